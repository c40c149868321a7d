package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ProductIndexer keeps the search index in step with catalog writes.
// Indexing is best effort; the store is the source of truth.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p model.Product) error
	RemoveProduct(ctx context.Context, productID int64) error
}

// BakeryProductUsecase is the seller side of the catalog. Every write
// is scoped to the acting bakery and leaves an audit trail.
type BakeryProductUsecase struct {
	tx           repo.TransactionManager
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	statsRepo    repo.StatsRepository
	indexer      ProductIndexer // nil disables indexing
}

func NewBakeryProductUsecase(
	tx repo.TransactionManager,
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	statsRepo repo.StatsRepository,
	indexer ProductIndexer,
) *BakeryProductUsecase {
	return &BakeryProductUsecase{
		tx:           tx,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		statsRepo:    statsRepo,
		indexer:      indexer,
	}
}

type ProductInput struct {
	CategoryID      int64
	Name            string
	Description     string
	Emoji           string
	ImageURL        string
	OriginalPrice   int64
	DiscountedPrice int64
	StockQuantity   int64
	IsAvailable     bool
	IsOnSale        bool
	SaleStartDate   *time.Time
	SaleEndDate     *time.Time
	ExpiryDate      *time.Time
}

type StockUpdateInput struct {
	NewStock int64
	Reason   string
}

func (u *BakeryProductUsecase) validateInput(ctx context.Context, in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return newValidationError("name is required")
	}
	if in.CategoryID <= 0 {
		return newValidationError("invalid category_id")
	}
	if in.OriginalPrice < 0 || in.DiscountedPrice < 0 {
		return newValidationError("prices must be >= 0")
	}
	if in.DiscountedPrice > in.OriginalPrice {
		return newValidationError("discounted_price must not exceed original_price")
	}
	if in.StockQuantity < 0 {
		return newValidationError("stock_quantity must be >= 0")
	}
	if in.SaleStartDate != nil && in.SaleEndDate != nil && in.SaleEndDate.Before(*in.SaleStartDate) {
		return newValidationError("sale_end_date must not be before sale_start_date")
	}

	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newValidationError("unknown category")
		}
		return storeError(err)
	}
	return nil
}

func discountPct(original, discounted int64) int64 {
	if original <= 0 || discounted >= original {
		return 0
	}
	return (original - discounted) * 100 / original
}

func (u *BakeryProductUsecase) Create(ctx context.Context, bakeryID int64, in ProductInput) (model.Product, error) {
	if bakeryID <= 0 {
		return model.Product{}, newNotLoggedIn()
	}
	if err := u.validateInput(ctx, &in); err != nil {
		return model.Product{}, err
	}

	var created model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p := model.Product{
			BakeryID:           bakeryID,
			CategoryID:         in.CategoryID,
			Name:               in.Name,
			Description:        in.Description,
			Emoji:              in.Emoji,
			ImageURL:           in.ImageURL,
			OriginalPrice:      in.OriginalPrice,
			DiscountedPrice:    in.DiscountedPrice,
			DiscountPercentage: discountPct(in.OriginalPrice, in.DiscountedPrice),
			StockQuantity:      in.StockQuantity,
			IsAvailable:        in.IsAvailable,
			IsOnSale:           in.IsOnSale,
			SaleStartDate:      in.SaleStartDate,
			SaleEndDate:        in.SaleEndDate,
			ExpiryDate:         in.ExpiryDate,
		}

		var err error
		created, err = r.Products().Create(ctx, p)
		if err != nil {
			return storeError(err)
		}

		return u.audit(ctx, r, bakeryID, model.AuditActionCreateProduct, created.ID, nil, created)
	})
	if err != nil {
		return model.Product{}, err
	}

	u.index(ctx, created)
	return created, nil
}

func (u *BakeryProductUsecase) Update(ctx context.Context, bakeryID int64, productID int64, in ProductInput) (model.Product, error) {
	if bakeryID <= 0 {
		return model.Product{}, newNotLoggedIn()
	}
	if productID <= 0 {
		return model.Product{}, newValidationError("invalid product id")
	}
	if err := u.validateInput(ctx, &in); err != nil {
		return model.Product{}, err
	}

	var updated model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return newNotFound("product not found")
		}
		if err != nil {
			return storeError(err)
		}
		if before.BakeryID != bakeryID {
			return newNotFound("product not found")
		}

		updated = before
		updated.CategoryID = in.CategoryID
		updated.Name = in.Name
		updated.Description = in.Description
		updated.Emoji = in.Emoji
		updated.ImageURL = in.ImageURL
		updated.OriginalPrice = in.OriginalPrice
		updated.DiscountedPrice = in.DiscountedPrice
		updated.DiscountPercentage = discountPct(in.OriginalPrice, in.DiscountedPrice)
		updated.IsAvailable = in.IsAvailable
		updated.IsOnSale = in.IsOnSale
		updated.SaleStartDate = in.SaleStartDate
		updated.SaleEndDate = in.SaleEndDate
		updated.ExpiryDate = in.ExpiryDate

		if err := r.Products().Update(ctx, updated); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return newNotFound("product not found")
			}
			return storeError(err)
		}

		return u.audit(ctx, r, bakeryID, model.AuditActionUpdateProduct, productID, before, updated)
	})
	if err != nil {
		return model.Product{}, err
	}

	u.index(ctx, updated)
	return updated, nil
}

func (u *BakeryProductUsecase) Delete(ctx context.Context, bakeryID int64, productID int64) error {
	if bakeryID <= 0 {
		return newNotLoggedIn()
	}
	if productID <= 0 {
		return newValidationError("invalid product id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return newNotFound("product not found")
		}
		if err != nil {
			return storeError(err)
		}
		if before.BakeryID != bakeryID {
			return newNotFound("product not found")
		}

		if err := r.Products().SoftDelete(ctx, bakeryID, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return newNotFound("product not found")
			}
			return storeError(err)
		}

		return u.audit(ctx, r, bakeryID, model.AuditActionDeleteProduct, productID, before, nil)
	})
	if err != nil {
		return err
	}

	if u.indexer != nil {
		if err := u.indexer.RemoveProduct(ctx, productID); err != nil {
			log.Printf("search deindex product %d: %v", productID, err)
		}
	}
	return nil
}

// UpdateStock sets an absolute stock level and records the delta as a
// manual adjustment. Checkout never goes through here.
func (u *BakeryProductUsecase) UpdateStock(ctx context.Context, bakeryID int64, productID int64, in StockUpdateInput) (model.Product, error) {
	if bakeryID <= 0 {
		return model.Product{}, newNotLoggedIn()
	}
	if productID <= 0 {
		return model.Product{}, newValidationError("invalid product id")
	}
	if in.NewStock < 0 {
		return model.Product{}, newValidationError("stock must be >= 0")
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return model.Product{}, newValidationError("reason is required")
	}

	var after model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return newNotFound("product not found")
		}
		if err != nil {
			return storeError(err)
		}
		if before.BakeryID != bakeryID {
			return newNotFound("product not found")
		}

		if err := r.Inventory().SetStock(ctx, productID, in.NewStock); err != nil {
			return storeError(err)
		}

		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: productID,
			BakeryID:  bakeryID,
			Delta:     in.NewStock - before.StockQuantity,
			Reason:    in.Reason,
		}); err != nil {
			return storeError(err)
		}

		after = before
		after.StockQuantity = in.NewStock

		return u.audit(ctx, r, bakeryID, model.AuditActionUpdateStock, productID, before, after)
	})
	if err != nil {
		return model.Product{}, err
	}

	u.index(ctx, after)
	return after, nil
}

func (u *BakeryProductUsecase) ListMine(ctx context.Context, bakeryID int64) ([]model.Product, error) {
	if bakeryID <= 0 {
		return nil, newNotLoggedIn()
	}
	items, err := u.productRepo.ListByBakery(ctx, bakeryID)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (u *BakeryProductUsecase) Dashboard(ctx context.Context, bakeryID int64) (repo.BakeryStats, error) {
	if bakeryID <= 0 {
		return repo.BakeryStats{}, newNotLoggedIn()
	}
	stats, err := u.statsRepo.BakeryDashboard(ctx, bakeryID)
	if err != nil {
		return repo.BakeryStats{}, storeError(err)
	}
	return stats, nil
}

func (u *BakeryProductUsecase) audit(ctx context.Context, r repo.TxRepos, bakeryID int64, action model.AuditAction, productID int64, before, after interface{}) error {
	entry := model.AuditLog{
		ActorBakeryID: bakeryID,
		Action:        action,
		ResourceType:  model.AuditResourceProduct,
		ResourceID:    productID,
	}
	if before != nil {
		b, _ := json.Marshal(before)
		entry.BeforeJSON = string(b)
	}
	if after != nil {
		a, _ := json.Marshal(after)
		entry.AfterJSON = string(a)
	}
	if err := r.AuditLogs().Create(ctx, entry); err != nil {
		return storeError(err)
	}
	return nil
}

func (u *BakeryProductUsecase) index(ctx context.Context, p model.Product) {
	if u.indexer == nil {
		return
	}
	if err := u.indexer.IndexProduct(ctx, p); err != nil {
		log.Printf("search index product %d: %v", p.ID, err)
	}
}
