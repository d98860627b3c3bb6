// Package codec provides the types shared by the bookmark format codecs:
// the parse error taxonomy and the warning values codecs use to report
// attributes a format cannot express.
package codec

import "fmt"

// FormatError reports a line that does not match the grammar of a
// line-oriented format (text, pdftk, csv). Line numbers are 1-based.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// SyntaxError reports malformed input in a nested-grammar format
// (xml, html, djvused). Pos is the byte offset into the input.
type SyntaxError struct {
	Pos    int64
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Pos, e.Reason)
}
