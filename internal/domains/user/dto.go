package user

import "time"

// ProfileDTO is the public profile summary. Email stays private.
type ProfileDTO struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	PostCount int       `json:"post_count"`
}

// ToProfile converts a User entity to its public representation.
func (u *User) ToProfile() ProfileDTO {
	return ProfileDTO{
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		PostCount: u.PostCount,
	}
}
