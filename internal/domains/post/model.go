package post

import "time"

// Post is a short text entry. IDs are sequential per username, assigned
// as count(owner's posts)+1, so deleting a post can reissue its ID to a
// later one.
type Post struct {
	ID        int           `json:"id"`
	Username  string        `json:"username"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	EditedAt  *time.Time    `json:"edited_at,omitempty"`
	Versions  []PostVersion `json:"versions"`
}

// PostVersion snapshots the content that was live immediately before an
// edit. EditedAt is the edit timestamp the replaced revision carried
// (its creation time if it was never edited).
type PostVersion struct {
	Content  string    `json:"content"`
	EditedAt time.Time `json:"edited_at"`
}
