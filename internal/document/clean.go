package document

import (
	"regexp"
	"strings"
)

var (
	pageNumberLine = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$`)
	extraNewlines  = regexp.MustCompile(`\n{3,}`)
	trailingSpace  = regexp.MustCompile(`(?m)[ \t]+$`)

	quoteReplacer = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
		"\r\n", "\n", "\r", "\n",
	)
)

// Clean normalises line endings and quotes, drops lines holding only a
// page number and collapses runs of blank lines to a paragraph break.
func Clean(text string) string {
	text = quoteReplacer.Replace(text)
	text = pageNumberLine.ReplaceAllString(text, "")
	text = trailingSpace.ReplaceAllString(text, "")
	text = extraNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
