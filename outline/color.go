package outline

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB bookmark color with components in the range [0, 1].
type Color struct {
	R, G, B float64
}

// String renders the color as three space-separated components, the
// form used by the xml and csv formats, for example "0.25 0 1".
func (c Color) String() string {
	return formatComponent(c.R) + " " + formatComponent(c.G) + " " + formatComponent(c.B)
}

func formatComponent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseColor reads a color from its space-separated form. Extra
// whitespace between components is accepted.
func ParseColor(s string) (Color, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("color %q: want 3 components, got %d", s, len(parts))
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: bad component %q", s, p)
		}
		vals[i] = v
	}
	return Color{R: vals[0], G: vals[1], B: vals[2]}, nil
}
