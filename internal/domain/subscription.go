package domain

import (
	"time"
)

// EntitlementPro is the entitlement key that grants the pro plan.
const EntitlementPro = "pro"

// Entitlement is one purchased entitlement from the subscription
// provider's customer record.
type Entitlement struct {
	ProductID    string     `json:"product_id"`
	ExpiresDate  string     `json:"expires_date"` // RFC 3339 string as delivered by the provider
	PurchaseDate string     `json:"purchase_date,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Subscription mirrors the subscription provider's view of one user:
// a map of entitlement key to entitlement. The plan-sync job reduces this
// to the user's plan.
type Subscription struct {
	UserID       string                 `json:"user_id"`
	Entitlements map[string]Entitlement `json:"entitlements"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// PlanAt reduces the subscription to a plan at the given instant. A pro
// entitlement with a parseable, unexpired expires_date yields PlanPro;
// anything else, including an unparseable date, yields PlanFree.
func (s *Subscription) PlanAt(now time.Time) (Plan, error) {
	ent, ok := s.Entitlements[EntitlementPro]
	if !ok {
		return PlanFree, nil
	}

	expires, err := time.Parse(time.RFC3339, ent.ExpiresDate)
	if err != nil {
		return PlanFree, err
	}

	if expires.After(now) {
		return PlanPro, nil
	}
	return PlanFree, nil
}
