package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
)

// UserRepository keeps users keyed by id with a unique email constraint.
type UserRepository struct {
	mu    sync.RWMutex
	clock *clock
	items map[string]domain.User
}

func (r *UserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.items {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		return repository.ErrDuplicate
	}
	now := r.clock.tick()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.items[user.ID] = *user
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return repository.ErrDuplicate
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.clock.tick()
	r.items[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.items[id]; ok {
			result[id] = &u
		}
	}
	return result, nil
}

func (r *UserRepository) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.User
	for _, u := range r.items {
		if len(filter.Roles) > 0 && !slices.Contains(filter.Roles, u.Role) {
			continue
		}
		if filter.Department != nil && u.Department != *filter.Department {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *UserRepository) CountByRole(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := map[string]int64{}
	for _, u := range r.items {
		result[string(u.Role)]++
	}
	return result, nil
}
