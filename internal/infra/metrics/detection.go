package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		messagesScored,
		reviewQueueDepth,
		reviewEvictions,
		callbacksSent,
		artifactsExtracted,
		velocityViolations,
		feedbackLabels,
	)
}

var (
	messagesScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detection_messages_scored_total",
			Help: "Messages scored, labeled by resulting risk level and degraded mode.",
		},
		[]string{"risk_level", "degraded"},
	)

	reviewQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "review_queue_depth",
			Help: "Current number of items in the human-review queue.",
		},
	)

	reviewEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "review_queue_evictions_total",
			Help: "Items evicted from the full review queue before a verdict.",
		},
	)

	callbacksSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callbacks_sent_total",
			Help: "Final reports delivered, labeled by gate reason.",
		},
		[]string{"reason"},
	)

	artifactsExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "artifacts_extracted_total",
			Help: "Distinct evidence artifacts captured across all sessions.",
		},
	)

	velocityViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velocity_violations_total",
			Help: "Messages ingested while a sliding-window threshold was exceeded.",
		},
		[]string{"kind"}, // rate | burst
	)

	feedbackLabels = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_feedback_labels_total",
			Help: "Human verdicts recorded, labeled by verdict.",
		},
		[]string{"label"},
	)
)

func MessageScored(riskLevel string, degraded bool) {
	d := "false"
	if degraded {
		d = "true"
	}
	messagesScored.WithLabelValues(norm(riskLevel), d).Inc()
}

func SetReviewQueueDepth(n int) { reviewQueueDepth.Set(float64(n)) }

func ReviewEvicted() { reviewEvictions.Inc() }

func CallbackSent(reason string) { callbacksSent.WithLabelValues(norm(reason)).Inc() }

func ArtifactsExtracted(n int) {
	if n > 0 {
		artifactsExtracted.Add(float64(n))
	}
}

func VelocityViolation(rate, burst bool) {
	if rate {
		velocityViolations.WithLabelValues("rate").Inc()
	}
	if burst {
		velocityViolations.WithLabelValues("burst").Inc()
	}
}

func FeedbackLabeled(label string) { feedbackLabels.WithLabelValues(norm(label)).Inc() }

func norm(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
