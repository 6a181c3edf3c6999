package scoring

import (
	"fmt"
	"strings"

	"scam-honeypot-agent/internal/domain/model"
)

// Risk-level thresholds on the aggregated score.
const (
	ScamThreshold       = 0.60
	SuspiciousThreshold = 0.35
)

// VelocityBoost is the fixed additive nudge applied (via Inputs.ContextBoost)
// when a session is in rate or burst violation. It is not stacked per window.
const VelocityBoost = 0.10

// Confidence tier boundaries on the raw classifier probability. A probability
// far from the 0.5 decision boundary on either side is high confidence
// regardless of predicted class; the banding below 0.5 is asymmetric on
// purpose and tested explicitly.
const (
	highUpperBound = 0.70
	highLowerBound = 0.30
	mediumBound    = 0.50
)

// TierFor maps a classifier probability to its confidence tier:
// HIGH when p >= 0.70 or p <= 0.30, MEDIUM when 0.50 <= p < 0.70, LOW otherwise.
func TierFor(probability float64) model.ConfidenceTier {
	switch {
	case probability >= highUpperBound || probability <= highLowerBound:
		return model.ConfidenceHigh
	case probability >= mediumBound:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// tierWeights is the central weight table: trust the classifier when it is
// confident, lean on rules and intent when it is not.
var tierWeights = map[model.ConfidenceTier]model.Weights{
	model.ConfidenceHigh:   {Classifier: 0.85, Rule: 0.10, Intent: 0.05},
	model.ConfidenceMedium: {Classifier: 0.60, Rule: 0.20, Intent: 0.20},
	model.ConfidenceLow:    {Classifier: 0.35, Rule: 0.35, Intent: 0.30},
}

// WeightsFor returns the weight row for a tier.
func WeightsFor(tier model.ConfidenceTier) model.Weights {
	if w, ok := tierWeights[tier]; ok {
		return w
	}
	return tierWeights[model.ConfidenceLow]
}

// DegradedWeights is the rule/intent split used when the classifier is
// unavailable: the LOW-tier classifier weight redistributed proportionally
// over the remaining two, so they still sum to 1.
func DegradedWeights() model.Weights {
	low := tierWeights[model.ConfidenceLow]
	remaining := low.Rule + low.Intent
	return model.Weights{
		Classifier: 0,
		Rule:       low.Rule / remaining,
		Intent:     low.Intent / remaining,
	}
}

// Inputs is everything the aggregator consumes. Aggregate is a pure function
// of this struct: same inputs, same breakdown.
type Inputs struct {
	ClassifierScore    float64
	Tier               model.ConfidenceTier
	ClassifierDegraded bool // classifier unavailable; redistribute its weight
	RuleScore          float64
	RuleCategories     []string
	IntentScore        float64
	IntentSignals      []string
	ContextBoost       float64 // additive nudge from session-level signals
}

// Aggregate combines the three sub-scores under the confidence-dependent
// weighting, applies the context boost, and thresholds into a risk level.
func Aggregate(in Inputs) model.RiskBreakdown {
	weights := WeightsFor(in.Tier)
	if in.ClassifierDegraded {
		weights = DegradedWeights()
	}

	score := clamp01(weights.Classifier*clamp01(in.ClassifierScore) +
		weights.Rule*clamp01(in.RuleScore) +
		weights.Intent*clamp01(in.IntentScore) +
		in.ContextBoost)

	level := model.RiskSafe
	switch {
	case score >= ScamThreshold:
		level = model.RiskScam
	case score >= SuspiciousThreshold:
		level = model.RiskSuspicious
	}

	return model.RiskBreakdown{
		ClassifierScore:       in.ClassifierScore,
		ClassifierTier:        in.Tier,
		ClassifierDegraded:    in.ClassifierDegraded,
		RuleScore:             in.RuleScore,
		MatchedRuleCategories: in.RuleCategories,
		IntentScore:           in.IntentScore,
		MatchedIntentSignals:  in.IntentSignals,
		ContextBoost:          in.ContextBoost,
		AggregatedScore:       score,
		RiskLevel:             level,
		WeightsUsed:           weights,
		Explanation:           explain(in, weights, score, level),
	}
}

// Strategy maps the assessment to the engagement recommendation consumed by
// the reply-generation collaborator. Advisory only.
func Strategy(level model.RiskLevel, score float64) model.EngagementStrategy {
	switch level {
	case model.RiskScam:
		return model.EngageMaximal
	case model.RiskSuspicious:
		return model.EngageProbe
	default:
		return model.EngageMinimal
	}
}

func explain(in Inputs, w model.Weights, score float64, level model.RiskLevel) string {
	var parts []string
	switch {
	case in.ClassifierDegraded:
		parts = append(parts, "classifier unavailable; rule and intent weights renormalized")
	case in.Tier == model.ConfidenceHigh:
		parts = append(parts, fmt.Sprintf("classifier confident (%.2f), trusted as primary signal", in.ClassifierScore))
	case in.Tier == model.ConfidenceMedium:
		parts = append(parts, fmt.Sprintf("classifier medium confidence (%.2f), blended with rules and intent", in.ClassifierScore))
	default:
		parts = append(parts, fmt.Sprintf("classifier low confidence (%.2f), rules and intent compensate", in.ClassifierScore))
	}
	if in.RuleScore >= 0.5 {
		parts = append(parts, fmt.Sprintf("strong rule signals (%.2f)", in.RuleScore))
	}
	if in.IntentScore >= 0.5 {
		parts = append(parts, fmt.Sprintf("strong intent signals (%.2f)", in.IntentScore))
	}
	if in.ContextBoost > 0 {
		parts = append(parts, fmt.Sprintf("session context boost +%.2f", in.ContextBoost))
	}
	parts = append(parts, fmt.Sprintf("aggregated %.4f -> %s", score, level))
	return strings.Join(parts, "; ")
}
