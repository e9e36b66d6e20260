// Package models contains data types and constants shared by the tradebot client and server.
package models

// Role identifies who authored a message in the conversation log
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one immutable entry of the conversation log.
// Ordering is append order; there are no IDs or timestamps.
type Message struct {
	Sender Role
	Text   string
}

// UserMessage creates a message authored by the user
func UserMessage(text string) Message {
	return Message{Sender: RoleUser, Text: text}
}

// BotMessage creates a message authored by the answering service
func BotMessage(text string) Message {
	return Message{Sender: RoleBot, Text: text}
}

// IsUser reports whether the message was authored by the user
func (m Message) IsUser() bool {
	return m.Sender == RoleUser
}
