package validator

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// SanitizeHTML escapes & < > " and ' so the result can be placed in HTML
// text or a quoted attribute. The service only emits JSON and spreadsheets,
// so this is for callers that render stored text into a page.
func SanitizeHTML(input string) string {
	if input == "" {
		return ""
	}
	return htmlEscaper.Replace(input)
}

var (
	angleBrackets   = regexp.MustCompile(`[<>]`)
	javascriptURL   = regexp.MustCompile(`(?i)javascript:`)
	inlineHandlerRe = regexp.MustCompile(`(?i)on\w+=`)
)

// SanitizeInput strips angle brackets, "javascript:" and inline handler
// attributes such as "onclick=", then trims. This is a denylist: the output
// is only safe as text, never as raw markup.
func SanitizeInput(input string) string {
	if input == "" {
		return ""
	}
	out := angleBrackets.ReplaceAllString(input, "")
	out = javascriptURL.ReplaceAllString(out, "")
	out = inlineHandlerRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036F, Stride: 1}},
}

// NormalizeVietnamese folds text for diacritic-insensitive comparison:
// decompose, drop combining marks, lower-case, trim. "đ" has no
// decomposition and is kept.
func NormalizeVietnamese(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacritics)))
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// SanitizeSheetCell prefixes a quote to values a spreadsheet would evaluate
// as a formula. A value that already starts with a quote gets one more, so
// UnsanitizeSheetCell can tell the two apart.
func SanitizeSheetCell(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '\'':
		return "'" + value
	}
	return value
}

// UnsanitizeSheetCell reverses SanitizeSheetCell for values read back from a
// sheet.
func UnsanitizeSheetCell(value string) string {
	if len(value) < 2 || value[0] != '\'' {
		return value
	}
	switch value[1] {
	case '=', '+', '-', '@', '\'':
		return value[1:]
	}
	return value
}
