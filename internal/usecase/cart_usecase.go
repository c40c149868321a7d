package usecase

import (
	"context"
	"errors"
	"fmt"

	repo "app/internal/repository"
)

// CartUsecase holds per-user pending selections. Stock is checked on
// every write but never reserved; only checkout decrements it.
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartRepo: cartRepo, productRepo: productRepo}
}

// CartLineResponse carries live catalog data: the price shown is the
// current discounted price, not a price locked at add time.
type CartLineResponse struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	BakeryName  string `json:"bakery_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
	IsAvailable bool   `json:"is_available"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, newNotLoggedIn()
	}

	views, err := u.cartRepo.ListViewByUser(ctx, userID)
	if err != nil {
		return CartResponse{}, storeError(err)
	}

	items := make([]CartLineResponse, 0, len(views))
	var total int64
	for _, v := range views {
		sub := v.DiscountedPrice * v.Quantity
		items = append(items, CartLineResponse{
			ProductID:   v.ProductID,
			Name:        v.ProductName,
			Emoji:       v.Emoji,
			BakeryName:  v.BakeryName,
			UnitPrice:   v.DiscountedPrice,
			Quantity:    v.Quantity,
			Subtotal:    sub,
			IsAvailable: v.IsAvailable,
		})
		total += sub
	}

	return CartResponse{Items: items, Total: total}, nil
}

// AddToCart upserts: adding a product already in the cart increments
// its quantity. The combined quantity must fit current stock.
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, newNotLoggedIn()
	}
	if in.ProductID <= 0 {
		return CartResponse{}, newValidationError("invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, newValidationError("quantity must be >= 1")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, newNotFound("product not found")
	}
	if err != nil {
		return CartResponse{}, storeError(err)
	}
	if !p.IsAvailable {
		return CartResponse{}, newUnavailable("product is not available")
	}

	var existingQty int64
	line, err := u.cartRepo.FindByUserAndProduct(ctx, userID, in.ProductID)
	if err == nil {
		existingQty = line.Quantity
	} else if !errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, storeError(err)
	}

	if existingQty+in.Quantity > p.StockQuantity {
		return CartResponse{}, newInsufficientStock(fmt.Sprintf("insufficient stock for %s", p.Name))
	}

	if err := u.cartRepo.Upsert(ctx, userID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, storeError(err)
	}

	return u.GetCart(ctx, userID)
}

// UpdateQuantity sets the line quantity directly (it does not add).
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, productID int64, qty int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, newNotLoggedIn()
	}
	if productID <= 0 {
		return CartResponse{}, newValidationError("invalid product_id")
	}
	if qty < 1 {
		return CartResponse{}, newValidationError("quantity must be >= 1")
	}

	if _, err := u.cartRepo.FindByUserAndProduct(ctx, userID, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, newNotFound("cart line not found")
		}
		return CartResponse{}, storeError(err)
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, newNotFound("product not found")
	}
	if err != nil {
		return CartResponse{}, storeError(err)
	}
	if qty > p.StockQuantity {
		return CartResponse{}, newInsufficientStock(fmt.Sprintf("insufficient stock for %s", p.Name))
	}

	if err := u.cartRepo.UpdateQuantity(ctx, userID, productID, qty); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, newNotFound("cart line not found")
		}
		return CartResponse{}, storeError(err)
	}

	return u.GetCart(ctx, userID)
}

func (u *CartUsecase) Remove(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, newNotLoggedIn()
	}
	if productID <= 0 {
		return CartResponse{}, newValidationError("invalid product_id")
	}

	if err := u.cartRepo.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, newNotFound("cart line not found")
		}
		return CartResponse{}, storeError(err)
	}

	return u.GetCart(ctx, userID)
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return newNotLoggedIn()
	}
	if err := u.cartRepo.Clear(ctx, userID); err != nil {
		return storeError(err)
	}
	return nil
}
