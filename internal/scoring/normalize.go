package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Homoglyph fold table: lookalike characters scammers substitute to dodge
// keyword matching, mapped to their Latin equivalent. Fullwidth forms are
// already handled by NFKD compatibility decomposition.
var homoglyphs = map[rune]rune{
	// Cyrillic lookalikes
	'а': 'a', 'е': 'e', 'о': 'o', 'р': 'p', 'с': 'c', 'у': 'y', 'х': 'x',
	'і': 'i', 'ѕ': 's', 'т': 't', 'к': 'k', 'м': 'm',
	// Greek lookalikes
	'ο': 'o', 'ν': 'v', 'α': 'a',
}

// Normalize produces the canonical form all signal/pattern matching runs on.
// The pipeline: Unicode compatibility decomposition, combining-mark strip,
// homoglyph fold, case fold, spaced-out letter collapse ("O T P" -> "otp"),
// whitespace collapse. Offsets into the result do not map back to the input;
// matching is semantic, not positional.
func Normalize(text string) string {
	text = norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.Is(unicode.Mn, r) {
			continue // strip combining marks left by decomposition
		}
		r = unicode.ToLower(r)
		if folded, ok := homoglyphs[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}

	return strings.Join(collapseSpacedLetters(strings.Fields(b.String())), " ")
}

// collapseSpacedLetters joins runs of two or more single-character tokens, so
// evasive spelling like "u p i" or "O T P" matches the canonical token. Longer
// tokens are left alone: collapsing every inter-word gap would destroy word
// boundaries for ordinary sentences.
func collapseSpacedLetters(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if isSingleAlnum(tokens[i]) {
			j := i
			for j < len(tokens) && isSingleAlnum(tokens[j]) {
				j++
			}
			if j-i >= 2 {
				out = append(out, strings.Join(tokens[i:j], ""))
				i = j
				continue
			}
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func isSingleAlnum(s string) bool {
	runes := []rune(s)
	if len(runes) != 1 {
		return false
	}
	r := runes[0]
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
