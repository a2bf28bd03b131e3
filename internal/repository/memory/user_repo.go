// internal/repository/memory/user_repo.go
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobportal-service/internal/domain/user"
	xerrors "jobportal-service/internal/pkg/errors"
)

// UserRepository keeps accounts in process memory. Data is lost on restart;
// it backs tests and DATABASE_URL=memory:// local runs.
type UserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*user.User
	byEmail map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[int64]*user.User),
		byEmail: make(map[string]int64),
	}
}

// Create stores a copy of u and fills in ID and CreatedAt.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return xerrors.ErrDuplicateEntry
	}

	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()

	r.byID[u.ID] = clone(u)
	r.byEmail[key] = u.ID
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return clone(u), nil
}

func clone(u *user.User) *user.User {
	c := *u
	c.Niches = append([]string(nil), u.Niches...)
	if u.Resume != nil {
		r := *u.Resume
		c.Resume = &r
	}
	return &c
}
