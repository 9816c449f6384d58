package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mkandie/acquisitions/internal/domain/user"
)

// UsersRepo is a mutex-guarded map implementation of the users store.
// It mirrors the postgres repo's contract, including email uniqueness,
// and backs the service and handler tests.
type UsersRepo struct {
	mu     sync.RWMutex
	items  map[int]user.User
	nextID int
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:  make(map[int]user.User),
		nextID: 1,
	}
}

func (r *UsersRepo) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) FindByID(_ context.Context, id int) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output := make([]user.User, 0, len(r.items))

	for _, u := range r.items {
		output = append(output, u)
	}

	sort.Slice(output, func(i, j int) bool { return output[i].ID < output[j].ID })

	return output, nil
}

func (r *UsersRepo) Insert(_ context.Context, nu user.NewUser) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == nu.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	u := user.User{
		ID:           r.nextID,
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		Name:         nu.Name,
		Role:         nu.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.nextID++
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) Update(_ context.Context, id int, patch user.Patch) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if patch.Email != nil {
		for otherID, other := range r.items {
			if otherID != id && other.Email == *patch.Email {
				return user.User{}, user.ErrEmailTaken
			}
		}
		u.Email = *patch.Email
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}

	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return u, nil
}

func (r *UsersRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return user.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
