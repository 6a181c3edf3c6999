package scoring

import "regexp"

// Intent signal family names, reported in RiskBreakdown.MatchedIntentSignals.
const (
	SignalFinancial = "financial-entity"
	SignalAction    = "action-request"
	SignalCoercion  = "coercion"
	SignalUrgency   = "urgency"
)

// Per-family contribution to the intent score. A family counts once no matter
// how many of its patterns hit; severity nuance belongs to the rule engine.
var familyWeights = map[string]float64{
	SignalFinancial: 0.30,
	SignalAction:    0.20,
	SignalCoercion:  0.30,
	SignalUrgency:   0.15,
}

// comboBonus rewards compound scam framing: two or more families together
// ("urgent" + "share your pin") are worse than either alone.
const comboBonus = 0.15

// familyOrder fixes the iteration order so the signal list is deterministic.
var familyOrder = []string{SignalFinancial, SignalAction, SignalCoercion, SignalUrgency}

// Regional financial vocabulary (mobile-payment identifiers, local currency
// markers) is a first-class family: regional phrasing is the dominant
// false-negative source for a generic classifier.
var financialPatterns = compileAll(
	`\bupi\b`,
	`\botp\b`,
	`\bpin\b`,
	`\bcvv\b`,
	`\bbank(?: account)?\b`,
	`\baccount(?: number)?\b`,
	`\bcard\b`,
	`\bwallet\b`,
	`\bpaytm\b`,
	`\bgpay\b`,
	`\bphonepe\b`,
	`\bifsc\b`,
	`\baadhaar\b`,
	`\bpan\b`,
	`\bkyc\b`,
	`\bnetbanking\b`,
	`\bdebit\b`,
	`\bcredit\b`,
	`₹\s*\d+`,
	`\brs\.?\s*\d+`,
	`\brupees?\b`,
	`\blakh\b`,
	`\bcrore\b`,
)

var actionPatterns = compileAll(
	`\bshare\b`,
	`\bsend\b`,
	`\bverif(?:y|ied)\b`,
	`\bupdat(?:e|ed)\b`,
	`\bprovid(?:e|ed)\b`,
	`\bconfirm(?:ed)?\b`,
	`\benter(?:ed)?\b`,
	`\bsubmit(?:ted)?\b`,
	`\bclick(?:ed)?\b`,
	`\btransfer(?:red)?\b`,
	`\bpa(?:y|id)\b`,
	`\bfill\b`,
	`\bregister(?:ed)?\b`,
)

var coercionPatterns = compileAll(
	`\bblock(?:ed)?\b`,
	`\bsuspend(?:ed)?\b`,
	`\bdeactivat(?:e|ed)\b`,
	`\bfreez(?:e|ing)\b`,
	`\bterminate[ds]?\b`,
	`\blegal action\b`,
	`\bpolice\b`,
	`\barrest(?:ed)?\b`,
	`\bcourt\b`,
	`\bpenalt(?:y|ies)\b`,
	`\bwarrant\b`,
	`\binvestigation\b`,
)

var urgencyPatterns = compileAll(
	`\burgent(?:ly)?\b`,
	`\bimmediately\b`,
	`\bnow\b`,
	`\btoday\b`,
	`\basap\b`,
	`\bhurry\b`,
	`\bquickly\b`,
	`\blast (?:chance|warning|reminder)\b`,
	`\bfinal (?:notice|warning|reminder)\b`,
	`\blimited time\b`,
	`\bdeadline\b`,
	`\bwithin \d+ (?:hours?|minutes?)\b`,
)

var intentFamilies = map[string][]*regexp.Regexp{
	SignalFinancial: financialPatterns,
	SignalAction:    actionPatterns,
	SignalCoercion:  coercionPatterns,
	SignalUrgency:   urgencyPatterns,
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// IntentResult is the intent scorer's verdict for one text.
type IntentResult struct {
	Score   float64
	Signals []string // matched family names, in familyOrder
}

// ScoreIntent runs the lightweight intent layer over text. The text is
// normalized before matching, so spaced-out and homoglyph evasions land on the
// same patterns as the canonical spelling. Empty or whitespace-only text
// scores zero with no signals.
func ScoreIntent(text string) IntentResult {
	canon := Normalize(text)
	if canon == "" {
		return IntentResult{}
	}

	res := IntentResult{}
	for _, family := range familyOrder {
		for _, re := range intentFamilies[family] {
			if re.MatchString(canon) {
				res.Signals = append(res.Signals, family)
				res.Score += familyWeights[family]
				break
			}
		}
	}
	if len(res.Signals) >= 2 {
		res.Score += comboBonus
	}
	res.Score = clamp01(res.Score)
	return res
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
