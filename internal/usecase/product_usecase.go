package usecase

import (
	"context"
	"errors"
	"log"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ProductSearcher is the full-text side of the catalog. SearchIDs
// returns matching product ids in relevance order; rows are then
// loaded from the store so every listing has the same shape.
type ProductSearcher interface {
	SearchIDs(ctx context.Context, query string, from, size int) (int64, []int64, error)
}

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	bakeryRepo   repo.BakeryRepository
	searcher     ProductSearcher // nil means LIKE-only search
}

func NewProductUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository, bakeryRepo repo.BakeryRepository, searcher ProductSearcher) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		bakeryRepo:   bakeryRepo,
		searcher:     searcher,
	}
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ProductDetailOutput struct {
	Product  model.Product  `json:"product"`
	Bakery   model.Bakery   `json:"bakery"`
	Category model.Category `json:"category"`
}

func (u *ProductUsecase) List(ctx context.Context, q repo.ProductListQuery) (ProductListOutput, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	// Full-text path when a query term is given and the search backend
	// is up; otherwise the store's LIKE filter answers.
	if q.Q != "" && u.searcher != nil && q.CategoryID == nil && q.BakeryID == nil {
		out, err := u.listViaSearch(ctx, q)
		if err == nil {
			return out, nil
		}
		log.Printf("product search degraded to LIKE: %v", err)
	}

	items, total, err := u.productRepo.ListPublic(ctx, q)
	if err != nil {
		return ProductListOutput{}, storeError(err)
	}
	return ProductListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *ProductUsecase) listViaSearch(ctx context.Context, q repo.ProductListQuery) (ProductListOutput, error) {
	from := (q.Page - 1) * q.Limit
	total, ids, err := u.searcher.SearchIDs(ctx, q.Q, from, q.Limit)
	if err != nil {
		return ProductListOutput{}, err
	}

	rows, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return ProductListOutput{}, err
	}

	// Keep relevance order; drop ids whose rows vanished since indexing.
	byID := make(map[int64]model.Product, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	items := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.IsAvailable {
			items = append(items, p)
		}
	}

	return ProductListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *ProductUsecase) GetDetail(ctx context.Context, productID int64) (ProductDetailOutput, error) {
	if productID <= 0 {
		return ProductDetailOutput{}, newValidationError("invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDetailOutput{}, newNotFound("product not found")
	}
	if err != nil {
		return ProductDetailOutput{}, storeError(err)
	}
	// Delisted products disappear from the public catalog entirely.
	if !p.IsAvailable {
		return ProductDetailOutput{}, newNotFound("product not found")
	}

	b, err := u.bakeryRepo.FindByID(ctx, p.BakeryID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return ProductDetailOutput{}, storeError(err)
	}
	c, err := u.categoryRepo.FindByID(ctx, p.CategoryID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return ProductDetailOutput{}, storeError(err)
	}

	return ProductDetailOutput{Product: p, Bakery: b, Category: c}, nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return cats, nil
}
