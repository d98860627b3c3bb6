package htmldoc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

var (
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
)

// Write serializes the tree below root as nested HTML lists. Named
// destinations, view specifications, styling and open state cannot be
// expressed and are dropped with a warning.
func Write(w io.Writer, root *outline.Node) ([]codec.Warning, error) {
	var ws codec.Warnings
	bw := bufio.NewWriter(w)
	bw.WriteString("<html>\n<body>\n<ul>\n")
	for _, child := range root.Children() {
		writeNode(bw, child, &ws)
	}
	bw.WriteString("</ul>\n</body>\n</html>\n")
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return ws.List(), nil
}

func writeNode(bw *bufio.Writer, node *outline.Node, ws *codec.Warnings) {
	if node.Bold || node.Italic || node.Color != nil {
		ws.Add("the html format cannot express formatting")
	}
	if !node.Open {
		ws.Add("the html format cannot express closed bookmarks")
	}
	indent := strings.Repeat("  ", node.Level())
	fmt.Fprintf(bw, `%s<li><a href="%s">%s</a>`, indent, href(node.Dest, ws), textEscaper.Replace(node.Title))
	if children := node.Children(); len(children) > 0 {
		bw.WriteByte('\n')
		bw.WriteString(indent)
		bw.WriteString("<ul>\n")
		for _, child := range children {
			writeNode(bw, child, ws)
		}
		bw.WriteString(indent)
		bw.WriteString("</ul>\n")
		bw.WriteString(indent)
	}
	bw.WriteString("</li>\n")
}

func href(dest outline.Destination, ws *codec.Warnings) string {
	switch d := dest.(type) {
	case *outline.PageView:
		if d.View != "" {
			ws.Add("the html format cannot express view destinations")
		}
		return fmt.Sprintf("#%d", d.Page)
	case *outline.Named:
		ws.Add("the html format cannot express named destinations")
	case *outline.Remote:
		switch t := d.Target.(type) {
		case *outline.PageView:
			if t.View != "" {
				ws.Add("the html format cannot express view destinations")
			}
			return fmt.Sprintf("%s#%d", attrEscaper.Replace(d.File), t.Page)
		case *outline.Named:
			ws.Add("the html format cannot express named destinations")
		default:
			ws.Add("the html format cannot express file links without a page target")
		}
	case *outline.URI:
		return attrEscaper.Replace(d.URI)
	}
	return ""
}
