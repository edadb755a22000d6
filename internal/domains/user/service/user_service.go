package service

import (
	"context"
	"errors"
	"fmt"

	"microblog-backend/internal/domains/user"
)

type userService struct {
	repo user.Repository
}

func NewUserService(repo user.Repository) user.Service {
	return &userService{repo: repo}
}

func (s *userService) GetProfile(ctx context.Context, username string) (*user.ProfileDTO, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile := u.ToProfile()
	return &profile, nil
}
