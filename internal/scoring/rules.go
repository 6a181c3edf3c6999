package scoring

import "regexp"

// Rule categories, used for explainability only; severity is the single
// scoring lever so categories with many low-severity patterns don't
// double-count.
const (
	CategoryUrgency          = "urgency"
	CategoryThreat           = "threat"
	CategoryFinancialRequest = "financial-request"
	CategoryPhishingAction   = "phishing-action"
	CategoryImpersonation    = "authority-impersonation"
)

// Rule is one named catalog pattern with an integer severity in [1,10].
type Rule struct {
	Name     string
	Category string
	Severity int
	re       *regexp.Regexp
}

func rule(name, category string, severity int, expr string) Rule {
	return Rule{Name: name, Category: category, Severity: severity, re: regexp.MustCompile(expr)}
}

// catalog is the full rule set. Score for a text is the severity sum of
// matching rules over the severity sum of the whole catalog.
var catalog = []Rule{
	rule("urgent-now", CategoryUrgency, 3, `\b(?:urgent(?:ly)?|immediately|right now|asap)\b`),
	rule("deadline-pressure", CategoryUrgency, 3, `\b(?:last chance|final (?:notice|warning)|limited time|deadline|within \d+ (?:hours?|minutes?))\b`),
	rule("act-today", CategoryUrgency, 2, `\b(?:today|hurry|quickly|fast)\b`),

	rule("account-block-threat", CategoryThreat, 7, `\b(?:account|card|upi|wallet).{0,40}\b(?:block(?:ed)?|suspend(?:ed)?|deactivat(?:e|ed)|freez(?:e|ing)|clos(?:e|ed))\b`),
	rule("block-generic", CategoryThreat, 4, `\b(?:block(?:ed)?|suspend(?:ed)?|deactivat(?:e|ed)|terminat(?:e|ed))\b`),
	rule("legal-threat", CategoryThreat, 8, `\b(?:legal action|police|arrest(?:ed)?|court|warrant|penalt(?:y|ies)|investigation)\b`),

	rule("share-credentials", CategoryFinancialRequest, 10, `\b(?:share|send|tell|give|provide)\b.{0,40}\b(?:otp|pin|cvv|password|passcode)\b`),
	rule("sensitive-token", CategoryFinancialRequest, 6, `\b(?:otp|pin|cvv|password|card number|account number|bank details)\b`),
	rule("payment-request", CategoryFinancialRequest, 6, `\b(?:pay|transfer|deposit|recharge)\b.{0,30}\b(?:₹|rs\.?|rupees?|inr|amount|fee)`),
	rule("upi-handle-request", CategoryFinancialRequest, 7, `\b(?:share|send|verify|update|confirm|link)\b.{0,30}\bupi\b`),
	rule("kyc-update", CategoryFinancialRequest, 5, `\bkyc\b.{0,30}\b(?:updat(?:e|ed)|verif(?:y|ied)|expir(?:e|ed|ing))\b`),

	rule("click-link", CategoryPhishingAction, 6, `\b(?:click|open|visit)\b.{0,30}\b(?:link|url|website)\b`),
	rule("install-app", CategoryPhishingAction, 7, `\b(?:install|download)\b.{0,30}\b(?:app|apk|anydesk|teamviewer)\b`),
	rule("form-fill", CategoryPhishingAction, 4, `\b(?:fill|submit|complete)\b.{0,30}\b(?:form|details)\b`),

	rule("bank-impersonation", CategoryImpersonation, 5, `\b(?:rbi|reserve bank|sbi|hdfc|icici|axis)\b`),
	rule("support-impersonation", CategoryImpersonation, 4, `\b(?:customer (?:care|service|support)|support team|security (?:team|department))\b`),
	rule("authority-claim", CategoryImpersonation, 3, `\b(?:official|authorized|government|department|headquarters?)\b`),
	rule("prize-bait", CategoryImpersonation, 5, `\b(?:lotter(?:y|ies)|prize|winner|cashback|reward|bonus)\b`),
}

var catalogTotalSeverity = func() int {
	total := 0
	for _, r := range catalog {
		total += r.Severity
	}
	return total
}()

// RuleResult is the pattern rule engine's verdict for one text.
type RuleResult struct {
	Score      float64
	Categories []string // distinct categories of matched rules, catalog order
}

// ScoreRules matches the normalized text against the catalog. The score is
// the matched-severity share of the catalog's total severity, clamped to [0,1].
func ScoreRules(text string) RuleResult {
	canon := Normalize(text)
	if canon == "" {
		return RuleResult{}
	}

	matched := 0
	seen := map[string]bool{}
	res := RuleResult{}
	for _, r := range catalog {
		if !r.re.MatchString(canon) {
			continue
		}
		matched += r.Severity
		if !seen[r.Category] {
			seen[r.Category] = true
			res.Categories = append(res.Categories, r.Category)
		}
	}
	res.Score = clamp01(float64(matched) / float64(catalogTotalSeverity))
	return res
}
