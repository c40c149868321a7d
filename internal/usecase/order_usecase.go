package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/infra/event"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// FeeSchedule maps a delivery option to its fee in centavos.
type FeeSchedule struct {
	Delivery int64
	Pickup   int64
}

func (f FeeSchedule) For(option model.DeliveryOption) int64 {
	if option == model.DeliveryOptionPickup {
		return f.Pickup
	}
	return f.Delivery
}

// OrderUsecase converts a cart into an immutable order snapshot.
// Everything between loading the cart and clearing it runs inside one
// transaction: stock decrement, header insert and item inserts commit
// together or not at all.
type OrderUsecase struct {
	tx     repo.TransactionManager
	fees   FeeSchedule
	events event.Publisher
}

func NewOrderUsecase(tx repo.TransactionManager, fees FeeSchedule, events event.Publisher) *OrderUsecase {
	if events == nil {
		events = event.Noop{}
	}
	return &OrderUsecase{tx: tx, fees: fees, events: events}
}

type PlaceOrderInput struct {
	DeliveryOption  string
	PaymentMethod   string
	DeliveryAddress string
	ContactNumber   string
	Notes           string
}

type OrderCreatedOutput struct {
	OrderID     int64             `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	TotalAmount int64             `json:"total_amount"`
	Status      model.OrderStatus `json:"status"`
}

type OrderItemOutput struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	BakeryName  string `json:"bakery_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

type OrderDetailOutput struct {
	Order model.Order       `json:"order"`
	Items []OrderItemOutput `json:"items"`
}

func validDeliveryOption(s string) bool {
	return s == string(model.DeliveryOptionDelivery) || s == string(model.DeliveryOptionPickup)
}

func validPaymentMethod(s string) bool {
	switch s {
	case string(model.PaymentMethodCOD), string(model.PaymentMethodGCash), string(model.PaymentMethodCard):
		return true
	}
	return false
}

// PlaceOrder implements checkout. The pre-check collects every
// offending line so the shopper can fix the cart in one go; the
// conditional decrement inside the same transaction stays the
// authority, so a concurrent checkout racing past the pre-check still
// cannot oversell. Stock rows are taken in ascending product-id order
// to keep two overlapping checkouts from deadlocking.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderCreatedOutput, error) {
	if userID <= 0 {
		return OrderCreatedOutput{}, newNotLoggedIn()
	}
	if !validDeliveryOption(in.DeliveryOption) {
		return OrderCreatedOutput{}, newValidationError("delivery_option must be delivery or pickup")
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return OrderCreatedOutput{}, newValidationError("payment_method must be cod, gcash or card")
	}

	var out OrderCreatedOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.Cart().ListViewByUser(ctx, userID)
		if err != nil {
			return storeError(err)
		}
		if len(lines) == 0 {
			return newEmptyCart()
		}

		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

		var offending []string
		for _, l := range lines {
			if !l.IsAvailable {
				offending = append(offending, l.ProductName+" (unavailable)")
				continue
			}
			if l.Quantity > l.StockQuantity {
				offending = append(offending, l.ProductName)
			}
		}
		if len(offending) > 0 {
			return newInsufficientStock("insufficient stock for: " + strings.Join(offending, ", "))
		}

		now := time.Now()
		items := make([]model.OrderItem, 0, len(lines))
		lineIDs := make([]int64, 0, len(lines))
		var subtotal int64

		for _, l := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return storeError(err)
			}
			if !ok {
				// Lost a race since the pre-check; roll everything back.
				return newInsufficientStock(fmt.Sprintf("insufficient stock for %s", l.ProductName))
			}

			lineSubtotal := l.DiscountedPrice * l.Quantity
			items = append(items, model.OrderItem{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				BakeryName:  l.BakeryName,
				UnitPrice:   l.DiscountedPrice,
				Quantity:    l.Quantity,
				Subtotal:    lineSubtotal,
				CreatedAt:   now,
			})
			subtotal += lineSubtotal
			lineIDs = append(lineIDs, l.ID)
		}

		option := model.DeliveryOption(in.DeliveryOption)
		fee := u.fees.For(option)

		orderNumber, err := u.generateOrderNumber(ctx, r.Orders(), now)
		if err != nil {
			return err
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			OrderNumber:     orderNumber,
			Subtotal:        subtotal,
			DeliveryFee:     fee,
			TotalAmount:     subtotal + fee,
			DeliveryOption:  option,
			PaymentMethod:   model.PaymentMethod(in.PaymentMethod),
			PaymentStatus:   model.PaymentStatusPending,
			Status:          model.OrderStatusPending,
			DeliveryAddress: in.DeliveryAddress,
			ContactNumber:   in.ContactNumber,
			Notes:           in.Notes,
			OrderedAt:       now,
		})
		if err != nil {
			return storeError(err)
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return storeError(err)
		}

		// Clear exactly the lines that went into this order.
		if err := r.Cart().DeleteLines(ctx, userID, lineIDs); err != nil {
			return storeError(err)
		}

		out = OrderCreatedOutput{
			OrderID:     orderID,
			OrderNumber: orderNumber,
			TotalAmount: subtotal + fee,
			Status:      model.OrderStatusPending,
		}
		return nil
	})

	if err != nil {
		return OrderCreatedOutput{}, err
	}

	u.publish(ctx, "order.created", out.OrderID, out.OrderNumber, userID, out.TotalAmount, out.Status)
	return out, nil
}

// Order numbers look like BB-20260830-1a2b3c: date prefix plus a random
// suffix, re-rolled on the rare collision.
func (u *OrderUsecase) generateOrderNumber(ctx context.Context, orders repo.OrderRepository, now time.Time) (string, error) {
	for i := 0; i < 5; i++ {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
		candidate := fmt.Sprintf("BB-%s-%s", now.Format("20060102"), suffix)

		exists, err := orders.OrderNumberExists(ctx, candidate)
		if err != nil {
			return "", storeError(err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", newConflict("could not generate unique order number")
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) ([]repo.OrderSummary, int64, error) {
	if userID <= 0 {
		return nil, 0, newNotLoggedIn()
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var (
		summaries []repo.OrderSummary
		total     int64
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		summaries, total, err = r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderDetailOutput, error) {
	if userID <= 0 {
		return OrderDetailOutput{}, newNotLoggedIn()
	}
	if orderID <= 0 {
		return OrderDetailOutput{}, newValidationError("invalid order id")
	}

	var out OrderDetailOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return newNotFound("order not found")
		}
		if err != nil {
			return storeError(err)
		}
		// Someone else's order looks exactly like a missing one.
		if o.UserID != userID {
			return newNotFound("order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeError(err)
		}

		out.Order = o
		out.Items = make([]OrderItemOutput, 0, len(items))
		for _, it := range items {
			out.Items = append(out.Items, OrderItemOutput{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				BakeryName:  it.BakeryName,
				UnitPrice:   it.UnitPrice,
				Quantity:    it.Quantity,
				Subtotal:    it.Subtotal,
			})
		}
		return nil
	})

	if err != nil {
		return OrderDetailOutput{}, err
	}
	return out, nil
}

// CancelOrder is allowed while the order is pending or processing.
// Stock is restored in the same transaction that flips the status, so
// the inventory invariant survives cancellation too.
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return newNotLoggedIn()
	}
	if orderID <= 0 {
		return newValidationError("invalid order id")
	}

	var (
		orderNumber string
		totalAmount int64
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return newNotFound("order not found")
		}
		if err != nil {
			return storeError(err)
		}
		if o.UserID != userID {
			return newNotFound("order not found")
		}

		if !o.Status.CanTransitionTo(model.OrderStatusCancelled) {
			return newInvalidState("order cannot be cancelled")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeError(err)
		}
		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
				// Product hard-deleted since ordering; nothing to restore.
				if errors.Is(err, repo.ErrNotFound) {
					continue
				}
				return storeError(err)
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return storeError(err)
		}

		orderNumber = o.OrderNumber
		totalAmount = o.TotalAmount
		return nil
	})

	if err != nil {
		return err
	}

	u.publish(ctx, "order.cancelled", orderID, orderNumber, userID, totalAmount, model.OrderStatusCancelled)
	return nil
}

// Events are best effort; a broker outage never fails the order.
func (u *OrderUsecase) publish(ctx context.Context, typ string, orderID int64, orderNumber string, userID int64, total int64, status model.OrderStatus) {
	ev := event.OrderEvent{
		Type:        typ,
		OrderID:     orderID,
		OrderNumber: orderNumber,
		UserID:      userID,
		TotalAmount: total,
		Status:      string(status),
		OccurredAt:  time.Now(),
	}
	if err := u.events.PublishOrderEvent(ctx, ev); err != nil {
		log.Printf("order event %s for %s not published: %v", typ, orderNumber, err)
	}
}
