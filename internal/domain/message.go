package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MessageRole distinguishes user turns from model turns in a room's
// conversation history.
type MessageRole string

const (
	RoleUser  MessageRole = "user"
	RoleModel MessageRole = "model"
)

// Message validation errors
var (
	ErrMessageIDEmpty      = errors.New("message ID cannot be empty")
	ErrMessageRoomIDEmpty  = errors.New("message room ID cannot be empty")
	ErrMessageRoleInvalid  = errors.New("message role must be user or model")
	ErrMessageContentEmpty = errors.New("message content cannot be empty")
)

// Message is one turn of a study-room conversation.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	RoomID    uuid.UUID   `json:"room_id"`
	UserID    string      `json:"user_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewMessage creates a Message. Returns an error if validation fails.
func NewMessage(roomID uuid.UUID, userID string, role MessageRole, content string) (*Message, error) {
	m := &Message{
		ID:        uuid.New(),
		RoomID:    roomID,
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMessageIDEmpty
	}
	if m.RoomID == uuid.Nil {
		return ErrMessageRoomIDEmpty
	}
	if m.Role != RoleUser && m.Role != RoleModel {
		return ErrMessageRoleInvalid
	}
	if m.Content == "" {
		return ErrMessageContentEmpty
	}
	return nil
}
