package verdicts

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GenericProductName is used when a scanned URL cannot be parsed.
const GenericProductName = "Generic Online Product"

// ExtractProductName derives a display name from a product URL. The first
// path segment longer than five characters that does not start with "dp"
// or "p" is title-cased with dashes replaced by spaces.
func ExtractProductName(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return GenericProductName
	}

	for segment := range strings.SplitSeq(u.Path, "/") {
		if utf8.RuneCountInString(segment) <= 5 || strings.HasPrefix(segment, "dp") || strings.HasPrefix(segment, "p") {
			continue
		}
		return titleWords(strings.ReplaceAll(segment, "-", " "))
	}

	return "Product from " + strings.ToLower(u.Hostname())
}

// titleWords upper-cases the first character of every run of word
// characters, leaving the rest untouched.
func titleWords(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	inWord := false
	for _, r := range s {
		word := r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !inWord {
			r = unicode.ToUpper(r)
		}
		inWord = word
		sb.WriteRune(r)
	}
	return sb.String()
}
