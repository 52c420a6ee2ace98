package app

import (
	"context"

	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	return s.repo.Update(ctx, userID, chatID, func(user *entity.User) error {
		user.SetState(state)
		return nil
	})
}

// BeginScan переводит пользователя в ожидание фото.
func (s *UserService) BeginScan(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// StartProcessing занимает пользователя на время скана.
// Пока скан идёт, повторный вызов возвращает entity.ErrScanInProgress.
func (s *UserService) StartProcessing(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Update(ctx, userID, chatID, func(user *entity.User) error {
		if user.Busy() {
			return entity.ErrScanInProgress
		}
		user.SetState(entity.StateProcessing)
		return nil
	})
}

// Finish возвращает пользователя в главное меню и запоминает скан.
// Пустой scanID означает, что скан не удался.
func (s *UserService) Finish(ctx context.Context, userID, chatID int64, scanID string) (*entity.User, error) {
	return s.repo.Update(ctx, userID, chatID, func(user *entity.User) error {
		user.SetState(entity.StateMainMenu)
		if scanID != "" {
			user.LastScan = scanID
		}
		return nil
	})
}
