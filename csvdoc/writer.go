package csvdoc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

// Write serializes the tree below root in the jpdftweak CSV format,
// one line per bookmark. Named destinations cannot be expressed and
// are dropped with a warning.
func Write(w io.Writer, root *outline.Node) ([]codec.Warning, error) {
	var ws codec.Warnings
	bw := bufio.NewWriter(w)
	for node := range root.All() {
		flags := ""
		if node.Open {
			flags += "O"
		}
		if node.Bold {
			flags += "B"
		}
		if node.Italic {
			flags += "I"
		}
		pageField := "0"
		var opts []string
		switch d := node.Dest.(type) {
		case nil:
		case *outline.PageView:
			pageField = fixedPage(d)
		case *outline.Named:
			ws.Add("the csv format cannot express named destinations")
		case *outline.Remote:
			opts = append(opts, `Action="GoToR"`)
			switch t := d.Target.(type) {
			case *outline.PageView:
				opts = append(opts, `Page="`+quoteValue(rawPage(t))+`"`)
			case *outline.Named:
				ws.Add("the csv format cannot express named destinations")
			}
			opts = append(opts, `File="`+quoteValue(d.File)+`"`)
		case *outline.URI:
			opts = append(opts, `Action="URI"`, `URI="`+quoteValue(d.URI)+`"`)
		}
		if node.Color != nil {
			opts = append(opts, `Color="`+quoteValue(node.Color.String())+`"`)
		}
		fmt.Fprintf(bw, "%d;%s;%s;%s", node.Level()-1, flags, escape(node.Title), pageField)
		if len(opts) > 0 {
			fmt.Fprintf(bw, ";%s", escape(strings.Join(opts, " ")))
		}
		fmt.Fprintln(bw)
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return ws.List(), nil
}

// fixedPage renders a destination for the fixed page field, escaping
// the view so it cannot collide with the field separator.
func fixedPage(d *outline.PageView) string {
	if d.View == "" {
		return strconv.Itoa(d.Page)
	}
	return strconv.Itoa(d.Page) + " " + escape(d.View)
}

// rawPage renders a destination for a Page moreopt, where escaping is
// applied to the joined moreopts as a whole.
func rawPage(d *outline.PageView) string {
	if d.View == "" {
		return strconv.Itoa(d.Page)
	}
	return strconv.Itoa(d.Page) + " " + d.View
}

func quoteValue(v string) string {
	return strings.ReplaceAll(v, `"`, `""`)
}
