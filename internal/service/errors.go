package service

import "errors"

// Common service errors. Services return these sentinels for expected
// failure conditions so callers can branch with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrNotOwned indicates the caller referenced a resource owned by a
	// different user. Maps to HTTP 403.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInsufficientGems indicates the user's gem balance cannot cover a
	// paid action. Maps to HTTP 402.
	ErrInsufficientGems = errors.New("insufficient gem balance")

	// ErrNoAdViews indicates the user has no ad views left to redeem.
	ErrNoAdViews = errors.New("no ad views remaining")

	// ErrInvalidAmount indicates a non-positive currency amount.
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrMediaTooLarge indicates source media exceeds the inline
	// transcription limit.
	ErrMediaTooLarge = errors.New("media exceeds the transcription size limit")

	// ErrUnsupportedMedia indicates a file extension with no known MIME
	// mapping.
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrNotEnglish indicates a transcription that does not look like
	// English text, which the analysis flow requires.
	ErrNotEnglish = errors.New("transcription is not English text")
)
