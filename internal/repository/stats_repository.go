package repository

import "context"

// BakeryStats backs the bakery dashboard.
type BakeryStats struct {
	TotalProducts     int64 `json:"total_products"`
	AvailableProducts int64 `json:"available_products"`
	TotalStock        int64 `json:"total_stock"`
	UnitsSold         int64 `json:"units_sold"`
	Revenue           int64 `json:"revenue"`
	PendingOrders     int64 `json:"pending_orders"`
}

type StatsRepository interface {
	BakeryDashboard(ctx context.Context, bakeryID int64) (BakeryStats, error)
}
