package rubrica

import (
	"strings"

	"github.com/tsawler/rubrica/codec"
)

// Warning is a non-fatal notice produced while parsing or serializing
// bookmarks, most often that the output format cannot express an
// attribute of the input. A conversion that returns warnings still
// produced complete output.
type Warning = codec.Warning

// FormatWarnings joins warnings into a single human-readable string,
// one warning per line. It returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "\n")
}
