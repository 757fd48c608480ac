// Package chat provides the chat message model.
package chat

import "github.com/evcraddock/house-market/internal/localtime"

// Message is a chat message between two users, optionally about a property.
type Message struct {
	ID         int64          `json:"id"`
	SenderID   int64          `json:"emisorId"`
	ReceiverID int64          `json:"receptorId"`
	PropertyID *int64         `json:"propiedadId,omitempty"`
	Content    string         `json:"contenido"`
	SentAt     localtime.Time `json:"fechaEnvio"`
	Read       bool           `json:"leido"`
}

// SendRequest is the body of POST /api/mensajes-chat.
type SendRequest struct {
	SenderID   int64  `json:"emisorId" validate:"required,gt=0"`
	ReceiverID int64  `json:"receptorId" validate:"required,gt=0,nefield=SenderID"`
	PropertyID *int64 `json:"propiedadId,omitempty" validate:"omitempty,gt=0"`
	Content    string `json:"contenido" validate:"required,max=2000"`
}

// Unread returns the messages addressed to userID that are not yet read.
func Unread(msgs []*Message, userID int64) []*Message {
	var out []*Message
	for _, m := range msgs {
		if m.ReceiverID == userID && !m.Read {
			out = append(out, m)
		}
	}
	return out
}
