package djvused

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

// Write serializes the tree below root as a djvused outline. View
// specifications, styling, color and open state cannot be expressed
// and are dropped with a warning.
func Write(w io.Writer, root *outline.Node) ([]codec.Warning, error) {
	var ws codec.Warnings
	bw := bufio.NewWriter(w)
	bw.WriteString("(bookmarks")
	for _, child := range root.Children() {
		writeNode(bw, child, &ws)
	}
	bw.WriteString(" )\n")
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return ws.List(), nil
}

func writeNode(bw *bufio.Writer, node *outline.Node, ws *codec.Warnings) {
	if node.Bold || node.Italic || node.Color != nil {
		ws.Add("the djvused format cannot express formatting")
	}
	if !node.Open {
		ws.Add("the djvused format cannot express closed bookmarks")
	}
	indent := strings.Repeat(" ", node.Level())
	fmt.Fprintf(bw, "\n%s(%s", indent, quote(node.Title))
	fmt.Fprintf(bw, "\n%s %s", indent, quote(target(node.Dest, ws)))
	for _, child := range node.Children() {
		writeNode(bw, child, ws)
	}
	bw.WriteString(" )")
}

func target(dest outline.Destination, ws *codec.Warnings) string {
	switch d := dest.(type) {
	case *outline.PageView:
		if d.View != "" {
			ws.Add("the djvused format cannot express view destinations")
		}
		return "#" + strconv.Itoa(d.Page)
	case *outline.Named:
		return "#" + d.Name
	case *outline.Remote:
		switch t := d.Target.(type) {
		case *outline.PageView:
			if t.View != "" {
				ws.Add("the djvused format cannot express view destinations")
			}
			return d.File + "#" + strconv.Itoa(t.Page)
		case *outline.Named:
			return d.File + "#" + t.Name
		}
		ws.Add("the djvused format cannot express file links without a target")
		return ""
	case *outline.URI:
		return d.URI
	}
	return ""
}

func quote(s string) string {
	return `"` + escapeString(s) + `"`
}

// escapeString renders s for a quoted djvused string: quote and
// backslash get a backslash, control and non-ASCII runes are written
// as octal escapes of their UTF-8 bytes.
func escapeString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r < 32 || r >= 127:
			var buf [4]byte
			n := utf8.EncodeRune(buf[:], r)
			for _, b := range buf[:n] {
				fmt.Fprintf(&sb, `\%03o`, b)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
