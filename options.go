package rubrica

import "golang.org/x/text/encoding"

// convertOptions holds configuration for a conversion.
type convertOptions struct {
	// Page shift applied between parsing and serializing.
	offset int

	// Long output (plain text only: keep view modes after the page).
	long bool

	// Input decoder. nil means the input is already UTF-8.
	encoding encoding.Encoding
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		offset:   0,
		long:     false,
		encoding: nil,
	}
}

// clone creates a copy of convertOptions.
func (o convertOptions) clone() convertOptions {
	return convertOptions{
		offset:   o.offset,
		long:     o.long,
		encoding: o.encoding,
	}
}
