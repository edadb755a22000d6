package auth

import "time"

// Purpose discriminates signup codes from login codes so a code issued
// for one flow cannot be consumed by the other.
type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeLogin  Purpose = "login"
)

// OTPEntry is a pending one-time code, keyed by email. Re-requesting a
// code overwrites the previous entry; verification consumes it.
type OTPEntry struct {
	Email           string    `json:"email"`
	Code            string    `json:"code"` // 6 digits
	Purpose         Purpose   `json:"purpose"`
	ExpiresAt       time.Time `json:"expires_at"`
	PendingUsername string    `json:"pending_username,omitempty"` // signup only
}

// Expired reports whether the entry is past its expiry at the given time.
func (e *OTPEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Session maps an opaque bearer token to an identity. Sessions never
// expire and there is no logout; memory-backed sessions die with the
// process.
type Session struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Username string `json:"username"`
}
