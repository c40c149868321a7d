package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// BakeryOrderUsecase lets a bakery work the orders that include its
// products. Status moves follow the same state machine the shopper
// side enforces.
type BakeryOrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
}

func NewBakeryOrderUsecase(tx repo.TransactionManager, orderRepo repo.OrderRepository) *BakeryOrderUsecase {
	return &BakeryOrderUsecase{tx: tx, orderRepo: orderRepo}
}

func (u *BakeryOrderUsecase) ListOrders(ctx context.Context, bakeryID int64, page int, limit int) ([]model.Order, int64, error) {
	if bakeryID <= 0 {
		return nil, 0, newNotLoggedIn()
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	orders, total, err := u.orderRepo.ListByBakery(ctx, bakeryID, page, limit)
	if err != nil {
		return nil, 0, storeError(err)
	}
	return orders, total, nil
}

// UpdateStatus advances an order along pending -> processing ->
// completed. Completion also marks the order paid; cancellation goes
// through the shopper flow so stock restore stays in one place.
func (u *BakeryOrderUsecase) UpdateStatus(ctx context.Context, bakeryID int64, orderID int64, next model.OrderStatus) (model.Order, error) {
	if bakeryID <= 0 {
		return model.Order{}, newNotLoggedIn()
	}
	if orderID <= 0 {
		return model.Order{}, newValidationError("invalid order id")
	}
	if next != model.OrderStatusProcessing && next != model.OrderStatusCompleted {
		return model.Order{}, newValidationError("status must be processing or completed")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return newNotFound("order not found")
		}
		if err != nil {
			return storeError(err)
		}

		ours, err := r.Orders().ContainsBakeryItems(ctx, orderID, bakeryID)
		if err != nil {
			return storeError(err)
		}
		if !ours {
			return newNotFound("order not found")
		}

		if !o.Status.CanTransitionTo(next) {
			return newInvalidState("invalid status transition")
		}

		before := o
		if next == model.OrderStatusCompleted {
			now := time.Now()
			if err := r.Orders().MarkCompleted(ctx, orderID, now, model.PaymentStatusPaid); err != nil {
				return storeError(err)
			}
			o.Status = model.OrderStatusCompleted
			o.PaymentStatus = model.PaymentStatusPaid
			o.CompletedAt = &now
		} else {
			if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
				return storeError(err)
			}
			o.Status = next
		}

		bJSON, _ := json.Marshal(before)
		aJSON, _ := json.Marshal(o)
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorBakeryID: bakeryID,
			Action:        model.AuditActionUpdateOrderStatus,
			ResourceType:  model.AuditResourceOrder,
			ResourceID:    orderID,
			BeforeJSON:    string(bJSON),
			AfterJSON:     string(aJSON),
		}); err != nil {
			return storeError(err)
		}

		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}
