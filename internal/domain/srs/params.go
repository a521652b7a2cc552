package srs

// Params defines the configurable thresholds for the retention heuristic.
// An item is due when the rounded days since its last review reach the
// threshold for its distinct-review-day count.
type Params struct {
	// FirstReviewDays applies to items never reviewed (0 review days).
	FirstReviewDays int

	// SecondReviewDays applies after exactly 1 distinct review day.
	SecondReviewDays int

	// LaterReviewDays applies after 2 or more distinct review days.
	LaterReviewDays int

	// Stage transitions: reviews of the current modality needed to
	// advance out of the reading and listening stages.
	ReadingAdvanceCount   int
	ListeningAdvanceCount int
}

// NewDefaultParams creates a Params instance with the standard spacing
// (1 day, then 3, then 7) and three reviews per modality to advance.
func NewDefaultParams() *Params {
	return &Params{
		FirstReviewDays:       1,
		SecondReviewDays:      3,
		LaterReviewDays:       7,
		ReadingAdvanceCount:   3,
		ListeningAdvanceCount: 3,
	}
}
