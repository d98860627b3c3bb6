package pdftk

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

// Write serializes the tree as pdftk bookmark records. Only title,
// level and page survive; anything else is dropped with a warning.
func Write(w io.Writer, root *outline.Node) ([]codec.Warning, error) {
	var ws codec.Warnings
	bw := bufio.NewWriter(w)
	for node := range root.All() {
		page := 0
		switch d := node.Dest.(type) {
		case *outline.PageView:
			page = d.Page
			if d.View != "" {
				ws.Add("the pdftk format cannot express view destinations")
			}
		default:
			ws.Add("the pdftk format cannot express bookmarks with actions other than GoTo")
		}
		if node.Color != nil || node.Bold || node.Italic {
			ws.Add("the pdftk format cannot express formatting")
		}
		if !node.Open {
			ws.Add("the pdftk format cannot express closed bookmarks")
		}

		fmt.Fprintf(bw, "BookmarkTitle: %s\n", encodeTitle(strings.TrimSpace(node.Title)))
		fmt.Fprintf(bw, "BookmarkLevel: %d\n", node.Level())
		fmt.Fprintf(bw, "BookmarkPageNumber: %d\n", page)
	}
	if err := bw.Flush(); err != nil {
		return ws.List(), fmt.Errorf("writing output: %w", err)
	}
	return ws.List(), nil
}

// encodeTitle escapes markup characters as named entities and anything
// outside printable ASCII as a decimal character reference, matching
// what pdftk's update_info expects.
func encodeTitle(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '&':
			sb.WriteString("&amp;")
		case r == '<':
			sb.WriteString("&lt;")
		case r == '>':
			sb.WriteString("&gt;")
		case r == '"':
			sb.WriteString("&quot;")
		case r < 32 || r >= 127:
			fmt.Fprintf(&sb, "&#%d;", r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
