package pipeline

// normalize.go - free-text canonicalization for lookup keys

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decompose splits accented characters into base letter plus combining
// mark and drops the marks (e.g. "Université" -> "Universite").
var decompose = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

var quoteReplacer = strings.NewReplacer("’", "'", "`", "'")

// NormalizeText canonicalizes free text for use as a lookup key:
// accent stripping, removal of non-ASCII remnants, quote normalization,
// lowercasing, and whitespace collapse. Empty input yields "".
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}

	out, _, err := transform.String(decompose, s)
	if err != nil {
		out = s
	}

	// Drop anything NFKD could not reduce to ASCII.
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if r < 128 {
			b.WriteRune(r)
		}
	}

	out = quoteReplacer.Replace(b.String())
	out = strings.ToLower(out)
	return strings.Join(strings.Fields(out), " ")
}
