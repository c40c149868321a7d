package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func (r *CartGormRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("product_id asc").
		Find(&lines).Error
	if err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}

// ListViewByUser joins live product and bakery data so the cart always
// shows current prices rather than prices at add time.
func (r *CartGormRepository) ListViewByUser(ctx context.Context, userID int64) ([]repo.CartLineView, error) {
	var views []repo.CartLineView
	err := r.db.WithContext(ctx).
		Table("cart_lines").
		Select(`cart_lines.*,
			products.name as product_name,
			products.emoji as emoji,
			products.discounted_price as discounted_price,
			products.stock_quantity as stock_quantity,
			products.is_available as is_available,
			bakeries.name as bakery_name`).
		Joins("join products on products.id = cart_lines.product_id and products.deleted_at is null").
		Joins("join bakeries on bakeries.id = products.bakery_id").
		Where("cart_lines.user_id = ?", userID).
		Order("cart_lines.added_at desc").
		Scan(&views).Error
	if err != nil {
		return []repo.CartLineView{}, err
	}
	return views, nil
}

func (r *CartGormRepository) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartLine, error) {
	var line model.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartLine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

// Upsert increments the existing line for (user, product) or inserts a
// new one. The unique index on (user_id, product_id) keeps concurrent
// adds from duplicating rows; a losing insert retries as an increment.
func (r *CartGormRepository) Upsert(ctx context.Context, userID int64, productID int64, addQty int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CartLine{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", gorm.Expr("quantity + ?", addQty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		line := model.CartLine{
			UserID:    userID,
			ProductID: productID,
			Quantity:  addQty,
			AddedAt:   time.Now(),
		}
		if err := tx.Create(&line).Error; err != nil {
			retry := tx.Model(&model.CartLine{}).
				Where("user_id = ? AND product_id = ?", userID, productID).
				Update("quantity", gorm.Expr("quantity + ?", addQty))
			if retry.Error == nil && retry.RowsAffected > 0 {
				return nil
			}
			return err
		}
		return nil
	})
}

func (r *CartGormRepository) UpdateQuantity(ctx context.Context, userID int64, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartGormRepository) Delete(ctx context.Context, userID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartLine{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartGormRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLine{}).Error
}

func (r *CartGormRepository) DeleteLines(ctx context.Context, userID int64, lineIDs []int64) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, lineIDs).
		Delete(&model.CartLine{}).Error
}
