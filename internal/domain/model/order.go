package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type DeliveryOption string

const (
	DeliveryOptionDelivery DeliveryOption = "delivery"
	DeliveryOptionPickup   DeliveryOption = "pickup"
)

type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "cod"
	PaymentMethodGCash PaymentMethod = "gcash"
	PaymentMethodCard  PaymentMethod = "card"
)

// Order is the committed snapshot of a checkout. Amounts are centavos.
// Immutable after creation except Status, PaymentStatus, Notes and
// CompletedAt. TotalAmount = Subtotal + DeliveryFee, always.
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64  `gorm:"not null;index" json:"user_id"`
	OrderNumber string `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_number"`

	Subtotal    int64 `gorm:"not null" json:"subtotal"`
	DeliveryFee int64 `gorm:"not null" json:"delivery_fee"`
	TotalAmount int64 `gorm:"not null" json:"total_amount"`

	DeliveryOption DeliveryOption `gorm:"type:varchar(20);not null" json:"delivery_option"`
	PaymentMethod  PaymentMethod  `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus  PaymentStatus  `gorm:"type:varchar(20);not null" json:"payment_status"`
	Status         OrderStatus    `gorm:"column:order_status;type:varchar(20);not null;index" json:"order_status"`

	DeliveryAddress string `gorm:"type:varchar(500)" json:"delivery_address"`
	ContactNumber   string `gorm:"type:varchar(30)" json:"contact_number"`
	Notes           string `gorm:"type:text" json:"notes"`

	OrderedAt   time.Time  `gorm:"not null;autoCreateTime" json:"ordered_at"`
	CompletedAt *time.Time `json:"completed_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// CanTransitionTo enforces the order state machine:
// pending -> processing -> completed, pending|processing -> cancelled.
// completed and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}
