package adapter

import (
	"context"

	"scam-honeypot-agent/internal/domain/model"
)

// ResponderAdapter is the port for the reply-generation collaborator. The core
// only hands it the recommended engagement strategy and the conversation so
// far; how the reply is produced is not this system's concern.
type ResponderAdapter interface {
	Reply(ctx context.Context, strategy model.EngagementStrategy, history []model.Message) (string, error)
}
