package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/infrastructure/storage"
)

// postsDocument is the on-disk shape: a flat list, newest first.
type postsDocument struct {
	Posts []post.Post `json:"posts"`
}

// jsonFileRepository implements post.Repository over a single JSON
// document with full read-modify-write cycles behind a mutex.
type jsonFileRepository struct {
	mu   sync.Mutex
	path string
}

func NewJSONFileRepository(dataDir string) post.Repository {
	return &jsonFileRepository{path: filepath.Join(dataDir, "posts.json")}
}

func (r *jsonFileRepository) load() (*postsDocument, error) {
	doc := &postsDocument{Posts: []post.Post{}}
	if _, err := storage.Load(r.path, doc); err != nil {
		return nil, err
	}
	if doc.Posts == nil {
		doc.Posts = []post.Post{}
	}
	return doc, nil
}

func (r *jsonFileRepository) save(doc *postsDocument) error {
	return storage.Save(r.path, doc)
}

func (r *jsonFileRepository) Create(ctx context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	count := 0
	for i := range doc.Posts {
		if strings.EqualFold(doc.Posts[i].Username, p.Username) {
			count++
		}
	}
	p.ID = count + 1

	// Prepend keeps the document newest-first.
	doc.Posts = append([]post.Post{*p}, doc.Posts...)

	if err := r.save(doc); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *jsonFileRepository) ListAll(ctx context.Context) ([]post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Posts, nil
}

func (r *jsonFileRepository) ListByUsername(ctx context.Context, username string) ([]post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	posts := []post.Post{}
	for i := range doc.Posts {
		if strings.EqualFold(doc.Posts[i].Username, username) {
			posts = append(posts, doc.Posts[i])
		}
	}
	return posts, nil
}

func (r *jsonFileRepository) FindByOwnerAndID(ctx context.Context, username string, id int) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Posts {
		if strings.EqualFold(doc.Posts[i].Username, username) && doc.Posts[i].ID == id {
			copied := doc.Posts[i]
			return &copied, nil
		}
	}
	return nil, post.ErrPostNotFound
}

func (r *jsonFileRepository) Update(ctx context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for i := range doc.Posts {
		if strings.EqualFold(doc.Posts[i].Username, p.Username) && doc.Posts[i].ID == p.ID {
			doc.Posts[i] = *p
			if err := r.save(doc); err != nil {
				return fmt.Errorf("update post: %w", err)
			}
			return nil
		}
	}
	return post.ErrPostNotFound
}

func (r *jsonFileRepository) Delete(ctx context.Context, username string, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for i := range doc.Posts {
		if strings.EqualFold(doc.Posts[i].Username, username) && doc.Posts[i].ID == id {
			doc.Posts = append(doc.Posts[:i], doc.Posts[i+1:]...)
			if err := r.save(doc); err != nil {
				return fmt.Errorf("delete post: %w", err)
			}
			return nil
		}
	}
	return post.ErrPostNotFound
}
