package srs

import (
	"errors"
	"time"

	"github.com/lingosavor/savor-api/internal/domain"
)

// Common errors
var (
	ErrInvalidStage = errors.New("stage is not a known stage")
)

// Service defines the interface for the spaced-repetition heuristics:
// deciding when an item is due and when it advances to the next stage.
type Service interface {
	// IsDue reports whether an item should be reviewed now, based on its
	// creation time and answered-exercise history.
	IsDue(now, createdAt time.Time, reviews []domain.ReviewEvent) bool

	// NextWordStage computes a word's next stage from its current state.
	// It returns the current stage and false when no transition applies.
	// At most one step is taken per call.
	NextWordStage(stage domain.Stage, reviewData domain.ReviewData, answers []domain.ReviewEvent) (domain.Stage, bool, error)

	// NextRoomStage computes a room's next stage from its current state.
	// Rooms enter the reading stage on any recorded review rather than on
	// answered exercises.
	NextRoomStage(stage domain.Stage, reviewData domain.ReviewData) (domain.Stage, bool, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates an SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates an SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

func (s *defaultService) IsDue(now, createdAt time.Time, reviews []domain.ReviewEvent) bool {
	return shouldReview(now, createdAt, reviews, s.params)
}

func (s *defaultService) NextWordStage(
	stage domain.Stage,
	reviewData domain.ReviewData,
	answers []domain.ReviewEvent,
) (domain.Stage, bool, error) {
	if !stage.IsValid() {
		return stage, false, ErrInvalidStage
	}

	switch stage {
	case domain.StageUnreviewed:
		if len(answers) > 0 {
			return domain.StageReading, true, nil
		}
	case domain.StageReading:
		if len(reviewData.Reading) >= s.params.ReadingAdvanceCount {
			return domain.StageListening, true, nil
		}
	case domain.StageListening:
		if len(reviewData.Listening) >= s.params.ListeningAdvanceCount {
			return domain.StageCompleted, true, nil
		}
	}

	return stage, false, nil
}

func (s *defaultService) NextRoomStage(
	stage domain.Stage,
	reviewData domain.ReviewData,
) (domain.Stage, bool, error) {
	if !stage.IsValid() {
		return stage, false, ErrInvalidStage
	}

	switch stage {
	case domain.StageUnreviewed:
		if len(reviewData.Reading) > 0 || len(reviewData.Listening) > 0 {
			return domain.StageReading, true, nil
		}
	case domain.StageReading:
		if len(reviewData.Reading) >= s.params.ReadingAdvanceCount {
			return domain.StageListening, true, nil
		}
	case domain.StageListening:
		if len(reviewData.Listening) >= s.params.ListeningAdvanceCount {
			return domain.StageCompleted, true, nil
		}
	}

	return stage, false, nil
}
