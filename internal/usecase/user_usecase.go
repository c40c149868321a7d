package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"
)

// PasswordHasher abstracts bcrypt so tests can swap in a cheap cost.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash string, plain string) error
}

type UserUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
}

func NewUserUsecase(userRepo repo.UserRepository, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, hasher: hasher}
}

type UpdateProfileInput struct {
	Name    string
	Phone   string
	Address string
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, newNotLoggedIn()
	}
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, newNotFound("user not found")
	}
	if err != nil {
		return model.User{}, storeError(err)
	}
	return user, nil
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (model.User, error) {
	if userID <= 0 {
		return model.User{}, newNotLoggedIn()
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.User{}, newValidationError("name is required")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, newNotFound("user not found")
	}
	if err != nil {
		return model.User{}, storeError(err)
	}

	user.Name = in.Name
	user.Phone = strings.TrimSpace(in.Phone)
	user.Address = strings.TrimSpace(in.Address)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return model.User{}, storeError(err)
	}
	return user, nil
}

func (u *UserUsecase) ChangePassword(ctx context.Context, userID int64, in ChangePasswordInput) error {
	if userID <= 0 {
		return newNotLoggedIn()
	}
	if err := validator.Password(in.NewPassword); err != nil {
		return newValidationError(err.Error())
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return newNotFound("user not found")
	}
	if err != nil {
		return storeError(err)
	}

	if err := u.hasher.Verify(user.PasswordHash, in.CurrentPassword); err != nil {
		return newValidationError("current password is incorrect")
	}

	hash, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return NewError(http.StatusInternalServerError, CodeStoreError, "could not hash password")
	}

	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return storeError(err)
	}
	return nil
}
