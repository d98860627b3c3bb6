// Package latexdoc reads and writes bookmark descriptions as LaTeX
// \bookmark commands from the hyperref bookmark package. The output
// is a standalone document that attaches the bookmarks to a PDF when
// compiled, after uncommenting the \includepdf line:
//
//	\bookmark[page=1,level=0]{Introduction}
//	    \bookmark[page=5,level=1]{Section 1.1}
//
// Each \bookmark command must be written on one line. Lines not
// holding a \bookmark command are ignored, which is how the document
// preamble is skipped on parsing.
package latexdoc

import "strings"

var titleEscaper = strings.NewReplacer(
	"$", `\$`,
	"%", `\%`,
	"&", `\&`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"[", "{[}",
	"]", "{]}",
	`"`, "{''}",
	`\`, `\textbackslash{}`,
	"~", `\textasciitilde{}`,
	"<", `\textless{}`,
	">", `\textgreater{}`,
	"^", `\textasciicircum{}`,
	"`", "{}`",
)

// titleUnescaper reverses titleEscaper. Longer sequences come first
// so that \textbackslash{} is not picked apart as \t plus text.
var titleUnescaper = strings.NewReplacer(
	`\textbackslash{}`, `\`,
	`\textasciitilde{}`, "~",
	`\textasciicircum{}`, "^",
	`\textgreater{}`, ">",
	`\textless{}`, "<",
	"{''}", `"`,
	"{[}", "[",
	"{]}", "]",
	"{}`", "`",
	`\$`, "$",
	`\%`, "%",
	`\&`, "&",
	`\#`, "#",
	`\_`, "_",
	`\{`, "{",
	`\}`, "}",
)
