package xmldoc

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Write serializes the tree below root as iText bookmark XML. The
// format expresses every tree attribute, so no warnings are produced
// and output round-trips except for whitespace at title edges.
func Write(w io.Writer, root *outline.Node) ([]codec.Warning, error) {
	bw := bufio.NewWriter(w)
	bw.WriteString(xml.Header)
	bw.WriteString("<Bookmark>\n")
	for _, child := range root.Children() {
		writeNode(bw, child)
	}
	bw.WriteString("</Bookmark>\n")
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return nil, nil
}

func writeNode(bw *bufio.Writer, node *outline.Node) {
	indent := strings.Repeat("  ", node.Level())
	bw.WriteString(indent)
	bw.WriteString("<Title")
	if !node.Open {
		bw.WriteString(` Open="false"`)
	}
	if a := actionName(node.Dest); a != "" {
		fmt.Fprintf(bw, ` Action="%s"`, a)
	}
	if p, ok := pageAttr(node.Dest); ok {
		fmt.Fprintf(bw, ` Page="%s"`, p)
	}
	if node.Color != nil {
		fmt.Fprintf(bw, ` Color="%s"`, node.Color)
	}
	style := ""
	if node.Italic {
		style = "italic"
	}
	if node.Bold {
		if style != "" {
			style += " "
		}
		style += "bold"
	}
	if style != "" {
		fmt.Fprintf(bw, ` Style="%s"`, style)
	}
	switch d := node.Dest.(type) {
	case *outline.URI:
		fmt.Fprintf(bw, ` URI="%s"`, xmlEscaper.Replace(d.URI))
	case *outline.Remote:
		fmt.Fprintf(bw, ` File="%s"`, xmlEscaper.Replace(d.File))
		if n, ok := d.Target.(*outline.Named); ok {
			fmt.Fprintf(bw, ` Named="%s"`, xmlEscaper.Replace(n.Name))
		}
	case *outline.Named:
		fmt.Fprintf(bw, ` Named="%s"`, xmlEscaper.Replace(d.Name))
	}
	fmt.Fprintf(bw, " >%s", xmlEscaper.Replace(node.Title))
	if children := node.Children(); len(children) > 0 {
		bw.WriteByte('\n')
		for _, child := range children {
			writeNode(bw, child)
		}
		bw.WriteString(indent)
	}
	bw.WriteString("</Title>\n")
}

func actionName(dest outline.Destination) string {
	switch dest.(type) {
	case *outline.PageView:
		return "GoTo"
	case *outline.Remote:
		return "GoToR"
	case *outline.URI:
		return "URI"
	case *outline.Named:
		return "Named"
	}
	return ""
}

// pageAttr renders the Page attribute for GoTo and GoToR actions.
func pageAttr(dest outline.Destination) (string, bool) {
	var pv *outline.PageView
	switch d := dest.(type) {
	case *outline.PageView:
		pv = d
	case *outline.Remote:
		if t, ok := d.Target.(*outline.PageView); ok {
			pv = t
		}
	}
	if pv == nil {
		return "", false
	}
	if pv.View == "" {
		return strconv.Itoa(pv.Page), true
	}
	return strconv.Itoa(pv.Page) + " " + pv.View, true
}
