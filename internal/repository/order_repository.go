package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// OrderSummary is one row of a user's order history.
type OrderSummary struct {
	model.Order
	TotalItems int64 `json:"total_items"`
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]OrderSummary, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// MarkCompleted sets the terminal completed state in one write.
	MarkCompleted(ctx context.Context, orderID int64, completedAt time.Time, payment model.PaymentStatus) error

	// Collision check for generated order numbers.
	OrderNumberExists(ctx context.Context, orderNumber string) (bool, error)

	// Bakery portal: orders containing at least one of the bakery's products.
	ListByBakery(ctx context.Context, bakeryID int64, page int, limit int) ([]model.Order, int64, error)
	ContainsBakeryItems(ctx context.Context, orderID int64, bakeryID int64) (bool, error)
}
