package rubrica

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/tsawler/rubrica/format"
	"github.com/tsawler/rubrica/outline"
)

// Converter reads a bookmark tree from one format and writes it to
// another. Each configuration method returns a new Converter instance,
// making it safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source (exactly one is set)
	filename string
	input    io.Reader
	tree     *outline.Node

	// Input format (unused when tree is set)
	from format.Format

	// Configuration
	options convertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	newConv := &Converter{
		filename: c.filename,
		input:    c.input,
		tree:     c.tree,
		from:     c.from,
		options:  c.options.clone(),
		err:      c.err,
	}
	return newConv
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Offset configures the conversion to add delta to the page number of
// every page destination, including the targets of remote links. The
// shift happens after parsing and before serializing; a shift that
// would produce a negative page number fails the conversion with an
// *outline.InvalidOffsetError.
//
// Example:
//
//	out, _, err := rubrica.Open("book.txt", format.Text).Offset(10).To(format.Text)
func (c *Converter) Offset(delta int) *Converter {
	newConv := c.clone()
	newConv.options.offset = delta
	return newConv
}

// Long configures plain text output to keep view modes after the page
// number. Other output formats ignore it.
//
// Example:
//
//	out, _, err := rubrica.Open("book.xml", format.XML).Long().To(format.Text)
func (c *Converter) Long() *Converter {
	newConv := c.clone()
	newConv.options.long = true
	return newConv
}

// InputEncoding declares the character encoding of the input by its
// IANA name, for example "ISO-8859-1" or "windows-1252". The default
// is UTF-8. XML input ignores this setting and follows the encoding
// declared in its header instead.
//
// Example:
//
//	out, _, err := rubrica.Open("book.csv", format.CSV).
//	    InputEncoding("ISO-8859-1").
//	    To(format.XML)
func (c *Converter) InputEncoding(label string) *Converter {
	newConv := c.clone()
	if newConv.err != nil {
		return newConv
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		newConv.err = fmt.Errorf("input encoding %q: %w", label, err)
	} else if enc == nil {
		newConv.err = fmt.Errorf("input encoding %q is not supported", label)
	} else {
		newConv.options.encoding = enc
	}
	return newConv
}

// ============================================================================
// Terminal Operations (execute the conversion and return results)
// ============================================================================

// Tree parses the input and returns the bookmark tree with the page
// offset applied. The returned root is owned by the caller.
//
// Returns the tree, any warnings encountered while parsing, and an
// error if parsing or shifting failed. Warnings indicate non-fatal
// issues (e.g., an attribute the format cannot carry) where parsing
// succeeded but information was dropped.
//
// Example:
//
//	root, warnings, err := rubrica.Open("book.csv", format.CSV).Tree()
func (c *Converter) Tree() (*outline.Node, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	root, warnings, err := c.parse()
	if err != nil {
		return nil, nil, err
	}

	if err := root.ShiftPages(c.options.offset); err != nil {
		return nil, nil, err
	}
	return root, warnings, nil
}

// To converts the input and returns the serialized output in the given
// format.
//
// Example:
//
//	out, warnings, err := rubrica.Open("book.txt", format.Text).To(format.DjVuSed)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rubrica.FormatWarnings(warnings))
//	}
func (c *Converter) To(f format.Format) (string, []Warning, error) {
	out, warnings, err := c.render(f)
	if err != nil {
		return "", nil, err
	}
	return string(out), warnings, nil
}

// WriteTo converts the input and writes the result to w. The output is
// serialized completely in memory first, so nothing is written when
// the conversion fails.
//
// Example:
//
//	warnings, err := rubrica.Open("book.txt", format.Text).WriteTo(os.Stdout, format.XML)
func (c *Converter) WriteTo(w io.Writer, f format.Format) ([]Warning, error) {
	out, warnings, err := c.render(f)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(out); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return warnings, nil
}

// Save converts the input and writes the result to the named file. The
// file is not touched until the conversion has succeeded in memory.
//
// Example:
//
//	warnings, err := rubrica.Open("book.txt", format.Text).Save("book.dsed", format.DjVuSed)
func (c *Converter) Save(filename string, f format.Format) ([]Warning, error) {
	out, warnings, err := c.render(f)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// render runs the full conversion and returns the serialized bytes.
func (c *Converter) render(f format.Format) ([]byte, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	e, err := lookup(f)
	if err != nil {
		return nil, nil, err
	}

	root, warnings, err := c.Tree()
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	writeWarnings, err := e.write(&buf, root, c.options.long)
	if err != nil {
		return nil, nil, fmt.Errorf("serializing %s output: %w", f, err)
	}
	return buf.Bytes(), append(warnings, writeWarnings...), nil
}

// parse reads the input into a tree. A tree supplied via FromTree is
// deep-copied so that terminal operations never mutate the original.
func (c *Converter) parse() (*outline.Node, []Warning, error) {
	if c.tree != nil {
		return c.tree.Copy(), nil, nil
	}

	e, err := lookup(c.from)
	if err != nil {
		return nil, nil, err
	}

	r := c.input
	if c.filename != "" {
		f, err := os.Open(c.filename)
		if err != nil {
			return nil, nil, fmt.Errorf("reading input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return nil, nil, fmt.Errorf("no input specified")
	}
	if c.options.encoding != nil && c.from != format.XML {
		r = c.options.encoding.NewDecoder().Reader(r)
	}

	root, warnings, err := e.parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s input: %w", c.from, err)
	}
	return root, warnings, nil
}
