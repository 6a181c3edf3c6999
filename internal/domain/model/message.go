package model

import "time"

type Sender string

const (
	SenderCounterpart Sender = "counterpart" // the suspected fraudulent actor
	SenderAgent       Sender = "agent"       // our honeypot side of the conversation
)

// Message is one turn of a conversation. Immutable once appended to a session.
type Message struct {
	Sender    Sender
	Text      string
	Timestamp time.Time
}
