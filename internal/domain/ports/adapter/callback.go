package adapter

import (
	"context"

	"scam-honeypot-agent/internal/domain/model"
)

// FinalReport is the payload delivered once per finalized session.
type FinalReport struct {
	SessionID              string
	ScamDetected           bool
	TotalMessagesExchanged int
	Artifacts              []string
	AgentNotes             string
}

// CallbackSender delivers the one-time final report to the external consumer.
type CallbackSender interface {
	Send(ctx context.Context, report FinalReport) error
}

// BuildFinalReport snapshots a session into the callback payload.
func BuildFinalReport(s *model.SessionState) FinalReport {
	artifacts := make([]string, len(s.Artifacts))
	copy(artifacts, s.Artifacts)
	return FinalReport{
		SessionID:              s.ID,
		ScamDetected:           s.ScamDetected(),
		TotalMessagesExchanged: s.TotalMessages,
		Artifacts:              artifacts,
		AgentNotes:             s.AgentNotes,
	}
}
