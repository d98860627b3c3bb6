package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

// Write serializes the tree in the plain text format. View tails are
// written only when long is set. Attributes the format cannot express
// are dropped and reported as warnings: non-GoTo destinations, styling,
// color, and closed state.
func Write(w io.Writer, root *outline.Node, long bool) ([]codec.Warning, error) {
	var ws codec.Warnings
	bw := bufio.NewWriter(w)
	for node := range root.All() {
		title := strings.TrimSpace(node.Title)
		if title != node.Title {
			ws.Add("the text format trims leading and trailing whitespace in titles")
		}
		if title == "" {
			ws.Add(`the text format cannot express whitespace-only titles; writing "_" instead`)
			title = "_"
		}
		page := 0
		view := ""
		switch d := node.Dest.(type) {
		case *outline.PageView:
			page = d.Page
			view = d.View
		default:
			ws.Add("the text format cannot express bookmarks with actions other than GoTo")
		}
		if node.Color != nil || node.Bold || node.Italic {
			ws.Add("the text format cannot express formatting")
		}
		if view != "" && !long {
			ws.Add("the text format drops view destinations unless long output is enabled")
		}
		if !node.Open {
			ws.Add("the text format cannot express closed bookmarks")
		}

		fmt.Fprintf(bw, "%s%s :: %d", strings.Repeat("    ", node.Level()-1), title, page)
		if long && view != "" {
			fmt.Fprintf(bw, " %s", view)
		}
		fmt.Fprintln(bw)
	}
	if err := bw.Flush(); err != nil {
		return ws.List(), fmt.Errorf("writing output: %w", err)
	}
	return ws.List(), nil
}
