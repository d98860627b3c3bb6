// Package format names the supported bookmark file formats and parses
// the "in2out" mode strings used to select a conversion.
package format

import (
	"fmt"
	"strings"
)

// Format represents a supported bookmark format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XML indicates the iText bookmark XML format.
	XML
	// Text indicates the indentation-based plain text format.
	Text
	// PDFTK indicates the bookmark section of pdftk dump_data output.
	PDFTK
	// CSV indicates the jpdftweak bookmark CSV format.
	CSV
	// HTML indicates nested HTML bookmark lists.
	HTML
	// DjVuSed indicates the djvused outline s-expression format.
	DjVuSed
	// LaTeX indicates a hyperref/bookmark package LaTeX document.
	LaTeX
)

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{XML, Text, PDFTK, CSV, HTML, DjVuSed, LaTeX}
}

// String returns the format name as used in mode strings.
func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case Text:
		return "text"
	case PDFTK:
		return "pdftk"
	case CSV:
		return "csv"
	case HTML:
		return "html"
	case DjVuSed:
		return "djvused"
	case LaTeX:
		return "latex"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XML:
		return ".xml"
	case Text:
		return ".txt"
	case PDFTK:
		return ".info"
	case CSV:
		return ".csv"
	case HTML:
		return ".html"
	case DjVuSed:
		return ".dsed"
	case LaTeX:
		return ".tex"
	default:
		return ""
	}
}

// Parse returns the format with the given name. Names are matched
// case-insensitively.
func Parse(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "xml":
		return XML, nil
	case "text":
		return Text, nil
	case "pdftk":
		return PDFTK, nil
	case "csv":
		return CSV, nil
	case "html":
		return HTML, nil
	case "djvused":
		return DjVuSed, nil
	case "latex":
		return LaTeX, nil
	}
	return Unknown, fmt.Errorf("unknown format %q", name)
}

// ParseMode splits a conversion mode of the form "in2out", for example
// "xml2text", into its input and output formats.
func ParseMode(mode string) (in, out Format, err error) {
	from, to, ok := strings.Cut(mode, "2")
	if !ok {
		return Unknown, Unknown, fmt.Errorf("mode %q: want the form in2out, for example xml2text", mode)
	}
	in, err = Parse(from)
	if err != nil {
		return Unknown, Unknown, fmt.Errorf("mode %q: %w", mode, err)
	}
	out, err = Parse(to)
	if err != nil {
		return Unknown, Unknown, fmt.Errorf("mode %q: %w", mode, err)
	}
	return in, out, nil
}
