package user

import "context"

// Repository is the credential store contract. The backing document is
// a single JSON map of email -> record, re-read on every access.
type Repository interface {
	// Create persists a new user.
	// Returns ErrEmailAlreadyExists or ErrUsernameTaken on conflict.
	Create(ctx context.Context, u *User) error

	// FindByEmail returns ErrUserNotFound if the email is unknown.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns ErrUserNotFound if the username is unknown.
	FindByUsername(ctx context.Context, username string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// IncrementPostCount bumps the post counter for username.
	IncrementPostCount(ctx context.Context, username string) error
}
