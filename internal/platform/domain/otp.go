package domain

import "time"

// OTP is the single one-time code slot on a user. Issuing a new code
// replaces the slot; Verified marks it consumed.
type OTP struct {
	CodeHash  string // argon2id PHC string, never the code itself
	ExpiresAt time.Time
	Attempts  int
	Verified  bool
}

func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// Pending reports whether the slot holds a code that may still be checked.
func (o *OTP) Pending() bool {
	return o != nil && !o.Verified
}
