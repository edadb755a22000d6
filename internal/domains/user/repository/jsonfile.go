package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"microblog-backend/internal/domains/user"
	"microblog-backend/internal/infrastructure/storage"
)

// usersDocument is the on-disk shape: a map of email -> user record.
type usersDocument struct {
	Users map[string]*user.User `json:"users"`
}

// jsonFileRepository implements user.Repository over a single JSON
// document. Every operation is a full read-modify-write; the mutex
// serializes those cycles since gin serves requests concurrently.
type jsonFileRepository struct {
	mu   sync.Mutex
	path string
}

func NewJSONFileRepository(dataDir string) user.Repository {
	return &jsonFileRepository{path: filepath.Join(dataDir, "users.json")}
}

func (r *jsonFileRepository) load() (*usersDocument, error) {
	doc := &usersDocument{Users: map[string]*user.User{}}
	if _, err := storage.Load(r.path, doc); err != nil {
		return nil, err
	}
	if doc.Users == nil {
		doc.Users = map[string]*user.User{}
	}
	return doc, nil
}

func (r *jsonFileRepository) save(doc *usersDocument) error {
	return storage.Save(r.path, doc)
}

func (r *jsonFileRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	if _, ok := doc.Users[u.Email]; ok {
		return user.ErrEmailAlreadyExists
	}
	for _, existing := range doc.Users {
		if strings.EqualFold(existing.Username, u.Username) {
			return user.ErrUsernameTaken
		}
	}

	doc.Users[u.Email] = u
	if err := r.save(doc); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *jsonFileRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	u, ok := doc.Users[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *jsonFileRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, u := range doc.Users {
		if strings.EqualFold(u.Username, username) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *jsonFileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return false, err
	}
	_, ok := doc.Users[email]
	return ok, nil
}

func (r *jsonFileRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return false, err
	}
	for _, u := range doc.Users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *jsonFileRepository) IncrementPostCount(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for _, u := range doc.Users {
		if strings.EqualFold(u.Username, username) {
			u.PostCount++
			if err := r.save(doc); err != nil {
				return fmt.Errorf("increment post count: %w", err)
			}
			return nil
		}
	}
	return user.ErrUserNotFound
}
