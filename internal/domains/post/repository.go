package post

import "context"

// Repository is the post store contract over the single JSON posts
// document. The list is kept newest-first.
type Repository interface {
	// Create assigns the post its per-owner sequential ID and prepends
	// it to the document.
	Create(ctx context.Context, p *Post) error

	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]Post, error)

	// ListByUsername returns the owner's posts, newest first. An
	// unknown username yields an empty list, not an error.
	ListByUsername(ctx context.Context, username string) ([]Post, error)

	// FindByOwnerAndID returns ErrPostNotFound if no post with that ID
	// belongs to username.
	FindByOwnerAndID(ctx context.Context, username string, id int) (*Post, error)

	// Update replaces the stored post matching (p.Username, p.ID).
	// Returns ErrPostNotFound if it no longer exists.
	Update(ctx context.Context, p *Post) error

	// Delete removes the post entirely. No tombstone.
	Delete(ctx context.Context, username string, id int) error
}
