package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type BakeryGormRepository struct {
	db *gorm.DB
}

func NewBakeryGormRepository(db *gorm.DB) *BakeryGormRepository {
	return &BakeryGormRepository{db: db}
}

func (r *BakeryGormRepository) Create(ctx context.Context, bakery *model.Bakery) error {
	return r.db.WithContext(ctx).Create(bakery).Error
}

func (r *BakeryGormRepository) FindByID(ctx context.Context, bakeryID int64) (model.Bakery, error) {
	var b model.Bakery
	err := r.db.WithContext(ctx).Where("id = ?", bakeryID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bakery{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Bakery{}, err
	}
	return b, nil
}

func (r *BakeryGormRepository) FindByEmail(ctx context.Context, email string) (model.Bakery, error) {
	var b model.Bakery
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bakery{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Bakery{}, err
	}
	return b, nil
}

func (r *BakeryGormRepository) Update(ctx context.Context, bakery model.Bakery) error {
	res := r.db.WithContext(ctx).Model(&model.Bakery{}).
		Where("id = ?", bakery.ID).
		Select("name", "address", "phone", "description", "updated_at").
		Updates(&bakery)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
