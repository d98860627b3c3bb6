// Package pdftk implements the bookmark records found in pdftk
// dump_data output: triplets of consecutive lines
//
//	BookmarkTitle: Chapter 1
//	BookmarkLevel: 1
//	BookmarkPageNumber: 5
//
// Everything else in the dump (InfoBegin, PageMedia lines, and so on)
// is skipped, so a full dump_data file parses as-is.
package pdftk

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

var (
	titlePattern = regexp.MustCompile(`^BookmarkTitle:\s*(.+)$`)
	levelPattern = regexp.MustCompile(`^BookmarkLevel:\s*([0-9]+)\s*$`)
	pagePattern  = regexp.MustCompile(`^BookmarkPageNumber:\s*([0-9]+)\s*$`)
)

// Parse reads bookmark records from pdftk dump_data output. A record is
// committed when its BookmarkPageNumber line arrives; a record missing
// its title or level at that point, a level below 1, or a level jump of
// more than one fails with a *codec.FormatError. Unrecognized lines are
// skipped.
func Parse(r io.Reader) (*outline.Node, []codec.Warning, error) {
	var (
		ws       codec.Warnings
		b        = outline.NewBuilder()
		title    string
		level    int
		hasTitle bool
		hasLevel bool
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		line := scanner.Text()
		if m := titlePattern.FindStringSubmatch(line); m != nil {
			title = decodeEntities(m[1])
			hasTitle = true
			continue
		}
		if m := levelPattern.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, nil, &codec.FormatError{
					Line:   lineNr,
					Reason: fmt.Sprintf("level %q is out of range", m[1]),
				}
			}
			level = n
			hasLevel = true
			continue
		}
		m := pagePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if !hasTitle {
			return nil, nil, &codec.FormatError{Line: lineNr, Reason: "record has no BookmarkTitle"}
		}
		if !hasLevel {
			return nil, nil, &codec.FormatError{Line: lineNr, Reason: "record has no BookmarkLevel"}
		}
		page, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, nil, &codec.FormatError{
				Line:   lineNr,
				Reason: fmt.Sprintf("page number %q is out of range", m[1]),
			}
		}
		node, err := b.Add(level, strings.TrimSpace(title))
		if err != nil {
			return nil, nil, &codec.FormatError{Line: lineNr, Reason: err.Error()}
		}
		node.Dest = &outline.PageView{Page: page}
		hasTitle, hasLevel = false, false
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}
	if hasTitle || hasLevel {
		ws.Add("incomplete bookmark record at end of input was dropped")
	}
	return b.Root(), ws.List(), nil
}

// decodeEntities decodes &#N; decimal references and the named entities
// amp, lt, gt, quot and apos in a single left-to-right pass, so already
// decoded text is never decoded again.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '&' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 0 {
			sb.WriteByte(s[i])
			i++
			continue
		}
		entity := s[i+1 : i+semi]
		if r, ok := decodeEntity(entity); ok {
			sb.WriteRune(r)
			i += semi + 1
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

func decodeEntity(entity string) (rune, bool) {
	switch entity {
	case "amp":
		return '&', true
	case "lt":
		return '<', true
	case "gt":
		return '>', true
	case "quot":
		return '"', true
	case "apos":
		return '\'', true
	}
	if !strings.HasPrefix(entity, "#") {
		return 0, false
	}
	n, err := strconv.Atoi(entity[1:])
	if err != nil || n < 0 || !utf8.ValidRune(rune(n)) {
		return 0, false
	}
	return rune(n), true
}
