package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

// BakeryDashboard aggregates the numbers the bakery portal shows on its
// landing page. Revenue counts only items from non-cancelled orders.
func (r *StatsGormRepository) BakeryDashboard(ctx context.Context, bakeryID int64) (repo.BakeryStats, error) {
	var stats repo.BakeryStats

	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).
		Where("bakery_id = ?", bakeryID).
		Count(&stats.TotalProducts).Error; err != nil {
		return repo.BakeryStats{}, err
	}

	if err := db.Model(&model.Product{}).
		Where("bakery_id = ? AND is_available = ?", bakeryID, true).
		Count(&stats.AvailableProducts).Error; err != nil {
		return repo.BakeryStats{}, err
	}

	var totalStock struct{ Total int64 }
	if err := db.Model(&model.Product{}).
		Select("coalesce(sum(stock_quantity), 0) as total").
		Where("bakery_id = ?", bakeryID).
		Scan(&totalStock).Error; err != nil {
		return repo.BakeryStats{}, err
	}
	stats.TotalStock = totalStock.Total

	var sold struct {
		Units   int64
		Revenue int64
	}
	err := db.Table("order_items").
		Select("coalesce(sum(order_items.quantity), 0) as units, coalesce(sum(order_items.subtotal), 0) as revenue").
		Joins("join products on products.id = order_items.product_id").
		Joins("join orders on orders.id = order_items.order_id").
		Where("products.bakery_id = ? AND orders.order_status <> ?", bakeryID, model.OrderStatusCancelled).
		Scan(&sold).Error
	if err != nil {
		return repo.BakeryStats{}, err
	}
	stats.UnitsSold = sold.Units
	stats.Revenue = sold.Revenue

	err = db.Table("orders").
		Joins("join order_items on order_items.order_id = orders.id").
		Joins("join products on products.id = order_items.product_id").
		Where("products.bakery_id = ? AND orders.order_status = ?", bakeryID, model.OrderStatusPending).
		Distinct("orders.id").
		Count(&stats.PendingOrders).Error
	if err != nil {
		return repo.BakeryStats{}, err
	}

	return stats, nil
}
