package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// ChatService runs study-room conversations: the user discusses a room's
// source transcript with the model, and both sides of the exchange are
// persisted.
type ChatService struct {
	rooms     store.RoomStore
	messages  store.MessageStore
	documents store.DocumentStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(
	rooms store.RoomStore,
	messages store.MessageStore,
	documents store.DocumentStore,
	generator generation.Generator,
	log *slog.Logger,
) *ChatService {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{
		rooms:     rooms,
		messages:  messages,
		documents: documents,
		generator: generator,
		logger:    log.With(slog.String("component", "chat_service")),
	}
}

// Respond appends the user's message to the room, generates the model's
// reply, persists it, and returns it. Returns ErrNotOwned when the room
// belongs to another user.
func (s *ChatService) Respond(ctx context.Context, user *domain.User, roomID uuid.UUID, content string) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.UserID != user.ID {
		return nil, ErrNotOwned
	}

	history, err := s.messages.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	userMsg, err := domain.NewMessage(roomID, user.ID, domain.RoleUser, content)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	turns := make([]generation.ChatTurn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, generation.ChatTurn{Role: string(msg.Role), Content: msg.Content})
	}

	reply, err := s.generator.ChatReply(ctx, s.systemInstruction(ctx, room), turns, content, user.Plan)
	if err != nil {
		log.Error("chat reply generation failed",
			slog.String("error", err.Error()),
			slog.String("room_id", roomID.String()))
		return nil, err
	}

	modelMsg, err := domain.NewMessage(roomID, user.ID, domain.RoleModel, reply)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Create(ctx, modelMsg); err != nil {
		return nil, err
	}

	return modelMsg, nil
}

// systemInstruction builds the room's system prompt. When the room is
// linked to a transcribed document the conversation is anchored to that
// transcript; otherwise the room's abstract has to do.
func (s *ChatService) systemInstruction(ctx context.Context, room *domain.UserRoom) string {
	base := "You are an English conversation partner for a Japanese learner. " +
		"Keep replies short, natural, and at the learner's level."

	if room.DocumentID != nil {
		doc, err := s.documents.GetByID(ctx, *room.DocumentID)
		if err == nil && doc.Transcription != "" {
			return fmt.Sprintf("%s\n\nThe conversation is about this material:\n%s", base, doc.Transcription)
		}
		logger.FromContextOrDefault(ctx, s.logger).Warn("room transcript unavailable, falling back to abstract",
			slog.String("room_id", room.ID.String()))
	}

	if room.Abstract != "" {
		return fmt.Sprintf("%s\n\nThe conversation topic is: %s", base, room.Abstract)
	}
	return base
}
