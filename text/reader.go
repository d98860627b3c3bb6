// Package text implements the indentation-based plain text bookmark
// format: one bookmark per line, nested four spaces per level.
//
//	Introduction :: 1
//	Chapter 1 :: 5
//	    Section 1.1 :: 7 XYZ 0 100 null
//
// The separator between title and page number is the literal " :: ".
// An optional view tail beginning with XYZ or Fit may follow the page;
// it is written back only when long output is enabled.
package text

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

// linePattern matches one bookmark line. The title group is greedy, so
// the separator binds to its last occurrence on the line.
var linePattern = regexp.MustCompile(`^( *)(.*) :: ([0-9]+)(?: ((?:XYZ|Fit).*))?$`)

// Parse reads bookmarks in the plain text format. A line that does not
// match the grammar, uses an indentation that is not a multiple of four
// spaces, or nests more than one level below its predecessor fails with
// a *codec.FormatError naming the line.
func Parse(r io.Reader) (*outline.Node, []codec.Warning, error) {
	b := outline.NewBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		m := linePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			return nil, nil, &codec.FormatError{
				Line:   lineNr,
				Reason: `line does not match "<title> :: <page>[ <view>]"`,
			}
		}
		indent, rawTitle, pageStr, view := m[1], m[2], m[3], m[4]
		if strings.HasPrefix(rawTitle, "\t") {
			return nil, nil, &codec.FormatError{
				Line:   lineNr,
				Reason: "indentation must use spaces, not tabs",
			}
		}
		if len(indent)%4 != 0 {
			return nil, nil, &codec.FormatError{
				Line:   lineNr,
				Reason: fmt.Sprintf("indentation of %d spaces is not a multiple of 4", len(indent)),
			}
		}
		title := strings.TrimSpace(rawTitle)
		if title == "" {
			return nil, nil, &codec.FormatError{Line: lineNr, Reason: "missing title"}
		}
		node, err := b.Add(len(indent)/4+1, title)
		if err != nil {
			return nil, nil, &codec.FormatError{Line: lineNr, Reason: err.Error()}
		}
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return nil, nil, &codec.FormatError{
				Line:   lineNr,
				Reason: fmt.Sprintf("page number %q is out of range", pageStr),
			}
		}
		node.Dest = &outline.PageView{Page: page, View: view}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}
	return b.Root(), nil, nil
}
