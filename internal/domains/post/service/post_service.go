package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/domains/user"
	"microblog-backend/pkg/logger"
)

type postService struct {
	repo  post.Repository
	users user.Repository
}

func NewPostService(repo post.Repository, users user.Repository) post.Service {
	return &postService{repo: repo, users: users}
}

func (s *postService) Feed(ctx context.Context) ([]post.Post, error) {
	return s.repo.ListAll(ctx)
}

func (s *postService) ListByUsername(ctx context.Context, username string) ([]post.Post, error) {
	return s.repo.ListByUsername(ctx, username)
}

func (s *postService) Create(ctx context.Context, username string, req post.CreatePostRequest) (*post.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	content, err := normalizeContent(req.Content)
	if err != nil {
		return nil, err
	}

	newPost := &post.Post{
		Username:  username,
		Content:   content,
		CreatedAt: time.Now(),
		Versions:  []post.PostVersion{},
	}
	if err := s.repo.Create(ctx, newPost); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	// The post count lives in a different document; the two writes are
	// not transactional. The post is already durable, so a failed bump
	// is logged, not surfaced.
	if err := s.users.IncrementPostCount(ctx, username); err != nil {
		logger.Warn("post count bump failed", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
	}

	return newPost, nil
}

func (s *postService) Edit(ctx context.Context, username string, id int, req post.UpdatePostRequest) (*post.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	content, err := normalizeContent(req.Content)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByOwnerAndID(ctx, username, id)
	if err != nil {
		return nil, err
	}

	// Snapshot the revision being replaced. It carries its own edit
	// timestamp, or the creation time if it was never edited.
	replacedAt := p.CreatedAt
	if p.EditedAt != nil {
		replacedAt = *p.EditedAt
	}
	p.Versions = append(p.Versions, post.PostVersion{
		Content:  p.Content,
		EditedAt: replacedAt,
	})

	now := time.Now()
	p.Content = content
	p.EditedAt = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Delete(ctx context.Context, username string, id int) error {
	return s.repo.Delete(ctx, username, id)
}

// normalizeContent truncates to the cap, then trims. Content that is
// empty after trimming is rejected.
func normalizeContent(raw string) (string, error) {
	runes := []rune(raw)
	if len(runes) > post.MaxContentLength {
		runes = runes[:post.MaxContentLength]
	}

	content := strings.TrimSpace(string(runes))
	if content == "" {
		return "", post.ErrEmptyContent
	}
	return content, nil
}
