package post

import "context"

// Service is the post surface: public reads plus owner-scoped
// mutations. Ownership is enforced by filtering on the authenticated
// username.
type Service interface {
	// Feed returns the global feed, newest first.
	Feed(ctx context.Context) ([]Post, error)

	// ListByUsername returns one user's posts, newest first.
	ListByUsername(ctx context.Context, username string) ([]Post, error)

	// Create stores a new post for username and bumps their post count.
	Create(ctx context.Context, username string, req CreatePostRequest) (*Post, error)

	// Edit snapshots the current content into the version history and
	// overwrites it.
	Edit(ctx context.Context, username string, id int, req UpdatePostRequest) (*Post, error)

	// Delete removes an owned post.
	Delete(ctx context.Context, username string, id int) error
}
