package user

import "time"

// User is a registered account. Records are created on successful signup
// verification and never deleted; PostCount is bumped on every post
// creation (and deliberately not decremented on delete).
type User struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	PostCount int       `json:"post_count"`
}
