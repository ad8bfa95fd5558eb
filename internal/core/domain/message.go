package domain

import (
	"strings"
	"time"
)

// AssistantID is the synthetic peer for the built-in assistant. Turns with
// this peer are never persisted as a durable conversation.
const AssistantID = "ai"

// AssistantGreeting seeds every assistant conversation.
const AssistantGreeting = "Hallo! Ich bin dein KI-Assistent. Wie kann ich helfen?"

// AssistantApology is shown when text generation fails; the failure never
// surfaces as a hard error.
const AssistantApology = "Ups, da ist etwas schief gelaufen bei der Verbindung zu meiner Intelligenz."

// Message is a single direct-message turn. ReceiverID is empty on
// broadcast/channel messages. IsAI marks synthetic assistant turns.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id,omitempty"`
	Text       string    `json:"text"`
	IsAI       bool      `json:"is_ai,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ConversationKey canonicalizes a two-party pair so both participants
// subscribe to the same live channel regardless of argument order.
func ConversationKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return "chat:" + a + ":" + b
}
