package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
)

type userRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*model.User
}

func NewUserRepository() repository.UserRepository {
	return &userRepository{
		items: make(map[uuid.UUID]*model.User),
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	r.items[stored.ID] = &stored
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.items {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}
