package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification represents a message shown on the company feed. Broadcast
// notifications have no recipient and are visible to everyone; targeted ones
// are only returned to their recipient.
type Notification struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty" db:"recipient_id"`
	Title       string     `json:"title" db:"title"`
	Body        string     `json:"body" db:"body"`
	Read        bool       `json:"read" db:"read"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a notification; recipient may be nil for broadcasts
func NewNotification(recipient *uuid.UUID, title, body string) *Notification {
	return &Notification{
		ID:          uuid.New(),
		RecipientID: recipient,
		Title:       title,
		Body:        body,
		CreatedAt:   time.Now(),
	}
}

// IsBroadcast returns true when the notification has no specific recipient
func (n *Notification) IsBroadcast() bool {
	return n.RecipientID == nil
}
