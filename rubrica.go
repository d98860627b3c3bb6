// Package rubrica converts hierarchical bookmark (outline) descriptions
// between the textual formats used by PDF and DJVU tooling: iText XML,
// indentation-based plain text, pdftk dump_data output, jpdftweak CSV,
// nested HTML lists, djvused s-expressions, and LaTeX bookmark commands.
//
// Basic usage:
//
//	out, warnings, err := rubrica.Open("book.txt", format.Text).To(format.XML)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rubrica.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := rubrica.Open("book.txt", format.Text).
//	    Offset(10).
//	    Long().
//	    Save("book.dsed", format.DjVuSed)
//
// For direct access to the tree model and to the individual codecs, the
// outline package and the per-format packages are also available.
package rubrica

import (
	"io"
	"strings"

	"github.com/tsawler/rubrica/format"
	"github.com/tsawler/rubrica/outline"
)

// Open returns a Converter that reads the named file in the given
// format. The file is not opened until a terminal operation like To()
// or Tree() runs.
//
// Example:
//
//	out, warnings, err := rubrica.Open("book.csv", format.CSV).To(format.Text)
func Open(filename string, f format.Format) *Converter {
	return &Converter{
		filename: filename,
		from:     f,
		options:  defaultOptions(),
	}
}

// FromReader returns a Converter that reads bookmarks from r in the
// given format. The reader is consumed by the first terminal operation.
//
// Example:
//
//	out, warnings, err := rubrica.FromReader(os.Stdin, format.PDFTK).To(format.XML)
func FromReader(r io.Reader, f format.Format) *Converter {
	return &Converter{
		input:   r,
		from:    f,
		options: defaultOptions(),
	}
}

// FromString returns a Converter that reads bookmarks from s in the
// given format.
//
// Example:
//
//	out, _, err := rubrica.FromString("Preface :: 1\n", format.Text).To(format.CSV)
func FromString(s string, f format.Format) *Converter {
	return FromReader(strings.NewReader(s), f)
}

// FromTree returns a Converter that serializes an existing bookmark
// tree. Terminal operations work on a deep copy, so the caller's tree
// is never modified.
//
// Example:
//
//	root := outline.NewRoot()
//	root.NewChild("Preface").Dest = &outline.PageView{Page: 1}
//	out, warnings, err := rubrica.FromTree(root).To(format.DjVuSed)
func FromTree(root *outline.Node) *Converter {
	return &Converter{
		tree:    root,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	f := rubrica.Must(format.Parse("djvused"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert is a helper that wraps a terminal operation like To() or
// Tree() and panics if the error is non-nil. It discards warnings and
// returns just the value.
//
// Example:
//
//	out := rubrica.MustConvert(rubrica.FromString(in, format.Text).To(format.XML))
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
