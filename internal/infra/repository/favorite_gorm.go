package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) ListViewByUser(ctx context.Context, userID int64) ([]repo.FavoriteView, error) {
	var views []repo.FavoriteView
	err := r.db.WithContext(ctx).
		Table("favorites").
		Select(`favorites.*,
			products.name as product_name,
			products.description as description,
			products.emoji as emoji,
			products.original_price as original_price,
			products.discounted_price as discounted_price,
			products.discount_percentage as discount_percentage,
			products.stock_quantity as stock_quantity,
			products.is_available as is_available,
			bakeries.name as bakery_name,
			categories.name as category_name`).
		Joins("join products on products.id = favorites.product_id and products.deleted_at is null").
		Joins("join bakeries on bakeries.id = products.bakery_id").
		Joins("join categories on categories.id = products.category_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at desc").
		Scan(&views).Error
	if err != nil {
		return []repo.FavoriteView{}, err
	}
	return views, nil
}

func (r *FavoriteGormRepository) Exists(ctx context.Context, userID int64, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FavoriteGormRepository) Create(ctx context.Context, fav model.Favorite) error {
	return r.db.WithContext(ctx).Create(&fav).Error
}

func (r *FavoriteGormRepository) Delete(ctx context.Context, userID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
