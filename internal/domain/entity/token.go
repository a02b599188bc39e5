package entity

import "time"

// ActivationToken is a short-lived numeric code proving control of an email address.
type ActivationToken struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`

	// Pending marks the one outstanding token of a registration. It is cleared
	// when the token is validated or superseded by a newer one.
	Pending      bool       `json:"pending"`
	SupersededAt *time.Time `json:"superseded_at,omitempty"`
}

// IsExpired reports whether the token can no longer be redeemed at now.
func (t *ActivationToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsValidated reports whether the token was already redeemed.
func (t *ActivationToken) IsValidated() bool {
	return t.ValidatedAt != nil
}

// IsSuperseded reports whether a newer token replaced this one.
func (t *ActivationToken) IsSuperseded() bool {
	return t.SupersededAt != nil
}
