// File: internal/infra/adapters/extraction/regex_extractor.go
package extraction

import (
	"regexp"
	"strings"

	"scam-honeypot-agent/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.ArtifactExtractor = (*RegexExtractor)(nil)

// Capture patterns for the payment identifiers and lures scammers drop into
// conversation. UPI handles are matched before emails so user@bank is not
// swallowed by the email pattern.
var (
	reURL   = regexp.MustCompile(`https?://[^\s<>"]+`)
	reUPI   = regexp.MustCompile(`(?i)\b[a-z0-9._-]{2,}@(?:upi|ybl|oksbi|okaxis|okhdfcbank|okicici|paytm|apl|ibl|axl)\b`)
	reEmail = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
	rePhone = regexp.MustCompile(`\b(?:\+?91[\s-]?)?[6-9]\d{9}\b`)
	reBank  = regexp.MustCompile(`\b\d{11,18}\b`)
)

// RegexExtractor pulls evidence artifacts (UPI handles, phone numbers, URLs,
// account numbers, email addresses) out of raw message text.
type RegexExtractor struct{}

func NewRegexExtractor() *RegexExtractor { return &RegexExtractor{} }

func (e *RegexExtractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(values []string) {
		for _, v := range values {
			v = strings.TrimSpace(v)
			key := strings.ToLower(v)
			if v == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}

	add(reURL.FindAllString(text, -1))

	// Mask URLs before the remaining passes so a path segment is not
	// re-captured as a phone or account number.
	masked := reURL.ReplaceAllString(text, " ")

	upis := reUPI.FindAllString(masked, -1)
	add(upis)

	// Drop UPI handles before the email pass.
	for _, u := range upis {
		masked = strings.ReplaceAll(masked, u, " ")
	}
	add(reEmail.FindAllString(masked, -1))

	phones := rePhone.FindAllString(masked, -1)
	add(phones)

	// Mask phones so a prefixed number is not re-captured as an account.
	for _, p := range phones {
		masked = strings.ReplaceAll(masked, p, " ")
	}
	add(reBank.FindAllString(masked, -1))

	return out
}
