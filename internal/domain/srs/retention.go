package srs

import (
	"math"
	"time"

	"github.com/lingosavor/savor-api/internal/domain"
)

// distinctReviewDays counts the number of distinct UTC calendar days that
// appear in the review history. Multiple reviews on the same day count as
// one day of study.
func distinctReviewDays(reviews []domain.ReviewEvent) int {
	days := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		days[r.At.UTC().Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

// lastReviewTime returns the most recent review timestamp, or createdAt
// if the item has never been reviewed.
func lastReviewTime(createdAt time.Time, reviews []domain.ReviewEvent) time.Time {
	last := createdAt
	for _, r := range reviews {
		if r.At.After(last) {
			last = r.At
		}
	}
	return last
}

// daysBetween returns the elapsed time from a to b in days, rounded to
// the nearest whole day. 11 hours is 0 days; 13 hours is 1 day.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// shouldReview applies the retention heuristic: the more distinct days an
// item has been studied, the longer it can rest before it is due again.
func shouldReview(now, createdAt time.Time, reviews []domain.ReviewEvent, params *Params) bool {
	elapsed := daysBetween(lastReviewTime(createdAt, reviews), now)

	switch k := distinctReviewDays(reviews); {
	case k == 0:
		return elapsed >= params.FirstReviewDays
	case k == 1:
		return elapsed >= params.SecondReviewDays
	default:
		return elapsed >= params.LaterReviewDays
	}
}
