package domain

import (
	"errors"
	"strings"
	"time"
)

// Plan identifies a user's subscription tier. The tier controls which
// generation model serves the user and whether gem billing applies.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Defaults applied to newly bootstrapped users.
const (
	InitialGems    = 200
	InitialAdViews = 10
)

// User-specific validation errors
var (
	// ErrUserIDEmpty is returned when a user ID is empty.
	ErrUserIDEmpty = errors.New("user ID cannot be empty")

	// ErrUserEmailInvalid is returned when a user's email is malformed.
	ErrUserEmailInvalid = errors.New("invalid email format")

	// ErrUserPlanInvalid is returned when a plan value is not a known tier.
	ErrUserPlanInvalid = errors.New("plan must be free or pro")

	// ErrGemsNegative is returned when an operation would drive the gem
	// balance below zero.
	ErrGemsNegative = errors.New("gem balance cannot be negative")
)

// User represents a registered user of the application. The ID is the
// authentication subject (auth uid), not a generated UUID, so the same
// identifier flows from the JWT through every owned record.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	UserName    string    `json:"user_name"`
	Plan        Plan      `json:"plan"`
	Gems        int       `json:"gems"`
	AdViews     int       `json:"ad_views"`
	FCMToken    string    `json:"-"` // push token, never exposed in JSON
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser creates a User with the bootstrap defaults: 200 gems, the free
// plan, and 10 remaining ad views. Returns an error if validation fails.
func NewUser(id, email, displayName, userName string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		UserName:    userName,
		Plan:        PlanFree,
		Gems:        InitialGems,
		AdViews:     InitialAdViews,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrUserIDEmpty
	}

	if u.Email != "" && !validateEmailFormat(u.Email) {
		return ErrUserEmailInvalid
	}

	if u.Plan != PlanFree && u.Plan != PlanPro {
		return ErrUserPlanInvalid
	}

	if u.Gems < 0 {
		return ErrGemsNegative
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
