package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// NotificationStatus tracks a queued notification through delivery.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification validation errors
var (
	ErrNotificationIDEmpty     = errors.New("notification ID cannot be empty")
	ErrNotificationUserEmpty   = errors.New("notification user ID cannot be empty")
	ErrNotificationTitleEmpty  = errors.New("notification title cannot be empty")
	ErrNotificationStatusKnown = errors.New("notification status is not a known status")
)

// Notification is one queued push notification. Delivery is handled out of
// process; this record is the queue entry and its status.
type Notification struct {
	ID        uuid.UUID          `json:"id"`
	UserID    string             `json:"user_id"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	Screen    string             `json:"screen,omitempty"` // client navigation target
	Data      map[string]string  `json:"data,omitempty"`
	Status    NotificationStatus `json:"status"`
	CreatedBy string             `json:"created_by"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
}

// NewNotification creates a pending Notification.
// Returns an error if validation fails.
func NewNotification(userID, title, body, screen, createdBy string, data map[string]string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Screen:    screen,
		Data:      data,
		Status:    NotificationStatusPending,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNotificationIDEmpty
	}
	if n.UserID == "" {
		return ErrNotificationUserEmpty
	}
	if n.Title == "" {
		return ErrNotificationTitleEmpty
	}
	switch n.Status {
	case NotificationStatusPending, NotificationStatusSent, NotificationStatusFailed:
	default:
		return ErrNotificationStatusKnown
	}
	return nil
}
