package repository

import (
	"app/internal/domain/model"
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Update(ctx context.Context, user model.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}
