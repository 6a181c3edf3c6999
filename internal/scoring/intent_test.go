package scoring

import "testing"

func hasSignal(res IntentResult, family string) bool {
	for _, s := range res.Signals {
		if s == family {
			return true
		}
	}
	return false
}

func TestScoreIntentCompoundFraming(t *testing.T) {
	full := ScoreIntent("URGENT! Share your OTP now")
	for _, family := range []string{SignalUrgency, SignalAction, SignalFinancial} {
		if !hasSignal(full, family) {
			t.Fatalf("expected %s signal, got %v", family, full.Signals)
		}
	}

	partial := ScoreIntent("Share your OTP")
	if !hasSignal(partial, SignalAction) || !hasSignal(partial, SignalFinancial) {
		t.Fatalf("expected action+financial, got %v", partial.Signals)
	}

	// The urgency family plus the combination framing must make the full
	// message strictly worse than the request alone.
	if full.Score <= partial.Score {
		t.Fatalf("compound score %.4f not greater than partial %.4f", full.Score, partial.Score)
	}
}

func TestScoreIntentCombinationBonus(t *testing.T) {
	single := ScoreIntent("your otp")       // financial only
	double := ScoreIntent("share your otp") // financial + action
	if len(single.Signals) != 1 || single.Score != familyWeights[SignalFinancial] {
		t.Fatalf("single family: score=%.4f signals=%v", single.Score, single.Signals)
	}
	want := familyWeights[SignalFinancial] + familyWeights[SignalAction] + comboBonus
	if diff := double.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("double family score %.4f, want %.4f", double.Score, want)
	}
}

func TestScoreIntentEvasion(t *testing.T) {
	canonical := ScoreIntent("share your otp")
	spaced := ScoreIntent("share your O T P")
	homoglyph := ScoreIntent("shаrе your ОТР") // Cyrillic lookalikes

	for name, res := range map[string]IntentResult{"spaced": spaced, "homoglyph": homoglyph} {
		if !hasSignal(res, SignalFinancial) {
			t.Fatalf("%s variant lost financial signal: %v", name, res.Signals)
		}
		if res.Score != canonical.Score {
			t.Fatalf("%s variant score %.4f != canonical %.4f", name, res.Score, canonical.Score)
		}
	}
}

func TestScoreIntentEmptyText(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		res := ScoreIntent(in)
		if res.Score != 0 || len(res.Signals) != 0 {
			t.Fatalf("ScoreIntent(%q) = %+v, want zero", in, res)
		}
	}
}

func TestScoreIntentClamped(t *testing.T) {
	res := ScoreIntent("URGENT: share and send your OTP PIN CVV immediately or account blocked, police case, pay ₹5000 today")
	if res.Score > 1.0 {
		t.Fatalf("score %.4f exceeds 1.0", res.Score)
	}
	if len(res.Signals) != 4 {
		t.Fatalf("expected all four families, got %v", res.Signals)
	}
}
