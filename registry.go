package rubrica

import (
	"fmt"
	"io"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/csvdoc"
	"github.com/tsawler/rubrica/djvused"
	"github.com/tsawler/rubrica/format"
	"github.com/tsawler/rubrica/htmldoc"
	"github.com/tsawler/rubrica/latexdoc"
	"github.com/tsawler/rubrica/outline"
	"github.com/tsawler/rubrica/pdftk"
	"github.com/tsawler/rubrica/text"
	"github.com/tsawler/rubrica/xmldoc"
)

// parseFunc reads one bookmark tree from r.
type parseFunc func(r io.Reader) (*outline.Node, []codec.Warning, error)

// writeFunc serializes root to w. The long flag is ignored by formats
// that have no short form.
type writeFunc func(w io.Writer, root *outline.Node, long bool) ([]codec.Warning, error)

// entry pairs the parser and serializer for one format.
type entry struct {
	parse parseFunc
	write writeFunc
}

var codecs = map[format.Format]entry{
	format.XML:     {xmldoc.Parse, ignoreLong(xmldoc.Write)},
	format.Text:    {text.Parse, text.Write},
	format.PDFTK:   {pdftk.Parse, ignoreLong(pdftk.Write)},
	format.CSV:     {csvdoc.Parse, ignoreLong(csvdoc.Write)},
	format.HTML:    {htmldoc.Parse, ignoreLong(htmldoc.Write)},
	format.DjVuSed: {djvused.Parse, ignoreLong(djvused.Write)},
	format.LaTeX:   {latexdoc.Parse, ignoreLong(latexdoc.Write)},
}

// ignoreLong adapts a serializer without a long form to writeFunc.
func ignoreLong(write func(io.Writer, *outline.Node) ([]codec.Warning, error)) writeFunc {
	return func(w io.Writer, root *outline.Node, _ bool) ([]codec.Warning, error) {
		return write(w, root)
	}
}

// lookup returns the codec entry for f.
func lookup(f format.Format) (entry, error) {
	e, ok := codecs[f]
	if !ok {
		return entry{}, fmt.Errorf("no codec for format %q", f)
	}
	return e, nil
}
