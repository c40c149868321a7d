package usecase

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

func NewFavoriteUsecase(favoriteRepo repo.FavoriteRepository, productRepo repo.ProductRepository) *FavoriteUsecase {
	return &FavoriteUsecase{favoriteRepo: favoriteRepo, productRepo: productRepo}
}

func (u *FavoriteUsecase) List(ctx context.Context, userID int64) ([]repo.FavoriteView, error) {
	if userID <= 0 {
		return nil, newNotLoggedIn()
	}
	views, err := u.favoriteRepo.ListViewByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return views, nil
}

func (u *FavoriteUsecase) Add(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return newNotLoggedIn()
	}
	if productID <= 0 {
		return newValidationError("invalid product_id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newNotFound("product not found")
		}
		return storeError(err)
	}

	exists, err := u.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		return storeError(err)
	}
	if exists {
		return newConflict("already in favorites")
	}

	if err := u.favoriteRepo.Create(ctx, model.Favorite{UserID: userID, ProductID: productID}); err != nil {
		return storeError(err)
	}
	return nil
}

func (u *FavoriteUsecase) Remove(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return newNotLoggedIn()
	}
	if productID <= 0 {
		return newValidationError("invalid product_id")
	}

	if err := u.favoriteRepo.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newNotFound("favorite not found")
		}
		return storeError(err)
	}
	return nil
}
