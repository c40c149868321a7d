package auth

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/validator"
)

type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

type RegisterUserOutput struct {
	User model.User
}

var (
	ErrNameRequired       = errors.New("name is required")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewRegisterUserUsecase(userRepo repository.UserRepository, hasher PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{userRepo: userRepo, hasher: hasher}
}

func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" {
		return out, ErrNameRequired
	}
	if err := validator.Email(in.Email); err != nil {
		return out, err
	}
	if err := validator.Password(in.Password); err != nil {
		return out, err
	}

	_, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return out, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return out, err
	}

	out.User = *user
	return out, nil
}
