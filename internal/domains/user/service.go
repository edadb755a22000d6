package user

import "context"

// Service is the public profile surface of the user domain.
type Service interface {
	// GetProfile returns the public summary for a username.
	GetProfile(ctx context.Context, username string) (*ProfileDTO, error)
}
