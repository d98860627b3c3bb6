package latexdoc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

const preamble = `\documentclass{article}
\usepackage[utf8]{inputenc}
\usepackage{pdfpages}
\usepackage[
  pdfpagelabels=true,
]{hyperref}
\usepackage{bookmark}

\begin{document}

%\pagenumbering{roman}
%\setcounter{page}{1}
%\includepdf[pages=-]{file.pdf}

`

// Write serializes the tree below root as a LaTeX document with one
// \bookmark command per bookmark. The open state cannot be expressed
// and is dropped with a warning.
func Write(w io.Writer, root *outline.Node) ([]codec.Warning, error) {
	var ws codec.Warnings
	bw := bufio.NewWriter(w)
	bw.WriteString(preamble)
	for node := range root.All() {
		writeNode(bw, node, &ws)
	}
	bw.WriteString("\n\\end{document}\n")
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return ws.List(), nil
}

func writeNode(bw *bufio.Writer, node *outline.Node, ws *codec.Warnings) {
	if !node.Open {
		ws.Add("the latex format cannot express closed bookmarks")
	}
	var opts []string
	if node.Bold {
		opts = append(opts, "bold")
	}
	if node.Italic {
		opts = append(opts, "italic")
	}
	if node.Color != nil {
		opts = append(opts, fmt.Sprintf("color=[rgb]{%s}", strings.ReplaceAll(node.Color.String(), " ", ",")))
	}
	if view := destView(node.Dest); view != "" {
		opts = append(opts, fmt.Sprintf("view={%s}", view))
	}
	optstr := strings.Join(opts, ", ")
	if optstr != "" {
		optstr += ", "
	}

	level := node.Level() - 1
	indent := strings.Repeat("    ", level)
	title := titleEscaper.Replace(node.Title)
	switch d := node.Dest.(type) {
	case nil:
		fmt.Fprintf(bw, "%s\\bookmark[%slevel=%d]{%s}\n", indent, optstr, level, title)
	case *outline.PageView:
		fmt.Fprintf(bw, "%s\\bookmark[%spage=%d,level=%d]{%s}\n", indent, optstr, d.Page, level, title)
	case *outline.Named:
		checkTarget(d.Name, ws)
		fmt.Fprintf(bw, "%s\\bookmark[%sdest=%s,level=%d]{%s}\n", indent, optstr, d.Name, level, title)
	case *outline.Remote:
		checkTarget(d.File, ws)
		switch t := d.Target.(type) {
		case *outline.PageView:
			fmt.Fprintf(bw, "%s\\bookmark[%sgotor=%s, page=%d,level=%d]{%s}\n", indent, optstr, d.File, t.Page, level, title)
		case *outline.Named:
			checkTarget(t.Name, ws)
			fmt.Fprintf(bw, "%s\\bookmark[%sgotor=%s, dest=%s,level=%d]{%s}\n", indent, optstr, d.File, t.Name, level, title)
		default:
			fmt.Fprintf(bw, "%s\\bookmark[%sgotor=%s,level=%d]{%s}\n", indent, optstr, d.File, level, title)
		}
	case *outline.URI:
		checkTarget(d.URI, ws)
		fmt.Fprintf(bw, "%s\\bookmark[%suri=%s,level=%d]{%s}\n", indent, optstr, d.URI, level, title)
	}
}

// destView extracts the view specification written alongside a page
// option.
func destView(dest outline.Destination) string {
	switch d := dest.(type) {
	case *outline.PageView:
		return d.View
	case *outline.Remote:
		if t, ok := d.Target.(*outline.PageView); ok {
			return t.View
		}
	}
	return ""
}

// checkTarget warns when a link target cannot survive the option
// syntax. Targets are written verbatim, so commas, brackets and
// braces would derail parsing.
func checkTarget(v string, ws *codec.Warnings) {
	if strings.ContainsAny(v, ",[]{}") {
		ws.Add("the latex format cannot express commas or brackets in link targets")
	}
}
