// Package csvdoc implements the jpdftweak bookmark CSV format:
// one semicolon-delimited line per bookmark,
//
//	depth;flags;title;page[ view][;moreopts]
//
// with depth counted from 0 at the top level, flags a subsequence of
// "OBI" (open, bold, italic), and moreopts a space-separated list of
// Key="value" pairs carrying actions the fixed fields cannot.
package csvdoc

import (
	"fmt"
	"strings"
)

// escapable reports whether a rune must be written as a \HH escape:
// control characters and the characters that would break the field or
// quote structure.
func escapable(r rune) bool {
	return r < 32 || r == '\\' || r == ';' || r == ':' || r == '"' || r == '\''
}

// escape replaces every escapable rune by \HH, HH being two uppercase
// hex digits of its code. unescape inverts it exactly.
func escape(s string) string {
	if !strings.ContainsFunc(s, escapable) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if escapable(r) {
			fmt.Fprintf(&sb, `\%02X`, r)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// unescape decodes \HH escapes. A truncated escape or one with non-hex
// digits is an error.
func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		if i+3 > len(s) {
			return "", fmt.Errorf(`truncated \HH escape at end of field`)
		}
		hi := hexValue(s[i+1])
		lo := hexValue(s[i+2])
		if hi < 0 || lo < 0 {
			return "", fmt.Errorf(`invalid escape %q`, s[i:i+3])
		}
		sb.WriteRune(rune(hi*16 + lo))
		i += 3
	}
	return sb.String(), nil
}

func hexValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}
