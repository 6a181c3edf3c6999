// File: internal/infra/adapters/responder/template_responder.go
package responder

import (
	"context"

	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.ResponderAdapter = (*TemplateResponder)(nil)

// Reply templates per engagement posture. Minimal keeps a plausible but
// non-committal persona; probe asks mild clarifying questions; maximal plays
// along and invites the counterpart to reveal payment details.
var templates = map[model.EngagementStrategy][]string{
	model.EngageMinimal: {
		"Okay.",
		"Hmm, I see.",
		"Alright, tell me more.",
	},
	model.EngageProbe: {
		"Sorry, who is this exactly?",
		"Which bank did you say you are calling from?",
		"I don't understand, can you explain again?",
		"Why would my account be affected?",
	},
	model.EngageMaximal: {
		"Oh no, that sounds serious. What do I need to do?",
		"I can pay, where exactly should I send it?",
		"Can you share the account or UPI again? I want to note it down.",
		"My internet is slow, please send the link once more.",
	},
}

// TemplateResponder generates canned persona replies. The pick is a function
// of conversation length so the same session does not repeat itself turn after
// turn, and tests stay deterministic.
type TemplateResponder struct{}

func NewTemplateResponder() *TemplateResponder { return &TemplateResponder{} }

func (r *TemplateResponder) Reply(ctx context.Context, strategy model.EngagementStrategy, history []model.Message) (string, error) {
	opts, ok := templates[strategy]
	if !ok {
		opts = templates[model.EngageMinimal]
	}
	return opts[len(history)%len(opts)], nil
}
