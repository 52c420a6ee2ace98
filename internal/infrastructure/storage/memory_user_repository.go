package storage

import (
	"context"
	"sync"

	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей.
// Наружу отдаются копии, чтобы состояние менялось только через Save и Update.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[int64]entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]entity.User),
	}
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.getLocked(userID, chatID)
	return &user, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users[user.ID] = *user
	r.mu.Unlock()

	return nil
}

// Update применяет fn под блокировкой хранилища
func (r *MemoryUserRepository) Update(ctx context.Context, userID, chatID int64, fn func(user *entity.User) error) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.getLocked(userID, chatID)
	if err := fn(&user); err != nil {
		return nil, err
	}
	r.users[userID] = user

	out := user
	return &out, nil
}

func (r *MemoryUserRepository) getLocked(userID, chatID int64) entity.User {
	if user, exists := r.users[userID]; exists {
		return user
	}

	// Создаём нового пользователя
	user := *entity.NewUser(userID, chatID)
	r.users[userID] = user
	return user
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
