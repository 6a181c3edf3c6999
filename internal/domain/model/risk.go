package model

// RiskLevel is the three-way classification derived from the aggregated score.
// The levels are totally ordered: Safe < Suspicious < Scam. The ordering is
// what makes a session's cumulative level a simple max-reduction.
type RiskLevel string

const (
	RiskSafe       RiskLevel = "safe"
	RiskSuspicious RiskLevel = "suspicious"
	RiskScam       RiskLevel = "scam"
)

func (r RiskLevel) rank() int {
	switch r {
	case RiskSuspicious:
		return 1
	case RiskScam:
		return 2
	default:
		return 0
	}
}

// MaxRiskLevel returns the higher of the two levels under Safe < Suspicious < Scam.
func MaxRiskLevel(a, b RiskLevel) RiskLevel {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// ConfidenceTier says how much the external classifier's output should be
// trusted for a given message.
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "high"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceLow    ConfidenceTier = "low"
)

// EngagementStrategy is advisory output for the reply-generation collaborator.
type EngagementStrategy string

const (
	EngageMinimal EngagementStrategy = "minimal"
	EngageProbe   EngagementStrategy = "probe"
	EngageMaximal EngagementStrategy = "maximal"
)

// Weights is the per-signal weighting used for one aggregation. Values sum to 1.
type Weights struct {
	Classifier float64
	Rule       float64
	Intent     float64
}

// RiskBreakdown is the immutable audit record produced for every ingested
// message: the three sub-scores, the weighting applied, and the decision.
type RiskBreakdown struct {
	ClassifierScore       float64
	ClassifierTier        ConfidenceTier
	ClassifierDegraded    bool // true when the classifier was unavailable and weights were renormalized
	RuleScore             float64
	MatchedRuleCategories []string
	IntentScore           float64
	MatchedIntentSignals  []string
	ContextBoost          float64
	AggregatedScore       float64
	RiskLevel             RiskLevel
	WeightsUsed           Weights
	Explanation           string
}
