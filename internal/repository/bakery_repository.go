package repository

import (
	"app/internal/domain/model"
	"context"
)

type BakeryRepository interface {
	Create(ctx context.Context, bakery *model.Bakery) error
	FindByID(ctx context.Context, bakeryID int64) (model.Bakery, error)
	FindByEmail(ctx context.Context, email string) (model.Bakery, error)
	Update(ctx context.Context, bakery model.Bakery) error
}
