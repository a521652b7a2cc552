package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/platform/logger"
	"github.com/lingosavor/savor-api/internal/store"
)

// wordsPerGem sets the price of paid text processing: one gem per started
// block of ten words.
const wordsPerGem = 10

// TextGemCost returns the gem price of processing the given text,
// rounding the word count up to the next gem.
func TextGemCost(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return (words + wordsPerGem - 1) / wordsPerGem
}

// GemService manages the in-app gem currency: top-ups, charges for paid
// actions, and compensating refunds.
type GemService struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewGemService creates a GemService.
func NewGemService(users store.UserStore, log *slog.Logger) *GemService {
	if users == nil {
		panic("users store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &GemService{
		users:  users,
		logger: log.With(slog.String("component", "gem_service")),
	}
}

// Add credits amount gems to the user and returns the new balance. When
// isAd is set the credit redeems one of the user's remaining ad views;
// with none left the call fails with ErrNoAdViews and credits nothing.
func (s *GemService) Add(ctx context.Context, userID string, amount int, isAd bool) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	if isAd {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return 0, err
		}
		if user.AdViews <= 0 {
			return 0, ErrNoAdViews
		}
		user.AdViews--
		if err := s.users.Update(ctx, user); err != nil {
			return 0, fmt.Errorf("failed to redeem ad view: %w", err)
		}
	}

	balance, err := s.users.AdjustGems(ctx, userID, amount)
	if err != nil {
		return 0, err
	}

	log.Info("gems credited",
		slog.String("user_id", userID),
		slog.Int("amount", amount),
		slog.Bool("is_ad", isAd),
		slog.Int("balance", balance))
	return balance, nil
}

// ChargeForText debits the user for processing text and returns the
// amount charged. Pro users are not billed. Returns ErrInsufficientGems
// when the balance cannot cover the cost; nothing is debited in that case.
func (s *GemService) ChargeForText(ctx context.Context, user *domain.User, text string) (int, error) {
	if user.Plan == domain.PlanPro {
		return 0, nil
	}

	cost := TextGemCost(text)
	if cost == 0 {
		return 0, nil
	}

	if _, err := s.users.AdjustGems(ctx, user.ID, -cost); err != nil {
		if errors.Is(err, domain.ErrGemsNegative) {
			return 0, ErrInsufficientGems
		}
		return 0, err
	}
	return cost, nil
}

// Refund compensates a failed paid action by crediting the charge back.
// Refund failures are logged but not surfaced; the caller's original
// error is the one that matters.
func (s *GemService) Refund(ctx context.Context, userID string, amount int) {
	if amount <= 0 {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)
	if _, err := s.users.AdjustGems(ctx, userID, amount); err != nil {
		log.Error("failed to refund gems",
			slog.String("error", err.Error()),
			slog.String("user_id", userID),
			slog.Int("amount", amount))
		return
	}
	log.Info("gems refunded",
		slog.String("user_id", userID),
		slog.Int("amount", amount))
}
