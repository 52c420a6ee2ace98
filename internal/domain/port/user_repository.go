package port

import (
	"context"

	"acnemap/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error

	// Update атомарно применяет fn к пользователю. Если fn вернула ошибку,
	// изменения не сохраняются.
	Update(ctx context.Context, userID, chatID int64, fn func(user *entity.User) error) (*entity.User, error)
}
