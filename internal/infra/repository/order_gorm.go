package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]repo.OrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []repo.OrderSummary{}, 0, err
	}

	var items []repo.OrderSummary
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, count(order_items.id) as total_items").
		Joins("left join order_items on order_items.order_id = orders.id").
		Where("orders.user_id = ?", userID).
		Group("orders.id").
		Order("orders.ordered_at desc").
		Limit(limit).
		Offset(offset).
		Scan(&items).Error
	if err != nil {
		return []repo.OrderSummary{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("order_status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) MarkCompleted(ctx context.Context, orderID int64, completedAt time.Time, payment model.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"order_status":   model.OrderStatusCompleted,
			"payment_status": payment,
			"completed_at":   completedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OrderGormRepository) ListByBakery(ctx context.Context, bakeryID int64, page int, limit int) ([]model.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	base := r.db.WithContext(ctx).
		Table("orders").
		Joins("join order_items on order_items.order_id = orders.id").
		Joins("join products on products.id = order_items.product_id").
		Where("products.bakery_id = ?", bakeryID).
		Group("orders.id")

	var ids []int64
	if err := base.Pluck("orders.id", &ids).Error; err != nil {
		return []model.Order{}, 0, err
	}
	total := int64(len(ids))
	if total == 0 {
		return []model.Order{}, 0, nil
	}

	var items []model.Order
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("ordered_at desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) ContainsBakeryItems(ctx context.Context, orderID int64, bakeryID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("join products on products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.bakery_id = ?", orderID, bakeryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
