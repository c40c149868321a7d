package auth

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/validator"
)

type RegisterBakeryInput struct {
	Name        string
	Email       string
	Password    string
	Address     string
	Phone       string
	Description string
}

type BakeryLoginOutput struct {
	Bakery model.Bakery   `json:"bakery"`
	Token  JwtAccessToken `json:"token"`
}

// BakeryAuthUsecase handles registration and login for the seller
// portal. Same mechanics as the shopper side, different subject role.
type BakeryAuthUsecase struct {
	bakeryRepo repository.BakeryRepository
	hasher     PasswordHasher
	verifier   PasswordVerifier
	issuer     AccessTokenIssuer
	clock      Clock
}

func NewBakeryAuthUsecase(
	bakeryRepo repository.BakeryRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *BakeryAuthUsecase {
	return &BakeryAuthUsecase{
		bakeryRepo: bakeryRepo,
		hasher:     hasher,
		verifier:   verifier,
		issuer:     issuer,
		clock:      clock,
	}
}

func (u *BakeryAuthUsecase) Register(ctx context.Context, in RegisterBakeryInput) (model.Bakery, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" {
		return model.Bakery{}, ErrNameRequired
	}
	if err := validator.Email(in.Email); err != nil {
		return model.Bakery{}, err
	}
	if err := validator.Password(in.Password); err != nil {
		return model.Bakery{}, err
	}

	_, err := u.bakeryRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return model.Bakery{}, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.Bakery{}, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.Bakery{}, err
	}

	bakery := &model.Bakery{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
		Description:  strings.TrimSpace(in.Description),
	}
	if err := u.bakeryRepo.Create(ctx, bakery); err != nil {
		return model.Bakery{}, err
	}
	return *bakery, nil
}

type UpdateBakeryProfileInput struct {
	Name        string
	Address     string
	Phone       string
	Description string
}

func (u *BakeryAuthUsecase) GetProfile(ctx context.Context, bakeryID int64) (model.Bakery, error) {
	return u.bakeryRepo.FindByID(ctx, bakeryID)
}

func (u *BakeryAuthUsecase) UpdateProfile(ctx context.Context, bakeryID int64, in UpdateBakeryProfileInput) (model.Bakery, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Bakery{}, ErrNameRequired
	}

	bakery, err := u.bakeryRepo.FindByID(ctx, bakeryID)
	if err != nil {
		return model.Bakery{}, err
	}

	bakery.Name = in.Name
	bakery.Address = strings.TrimSpace(in.Address)
	bakery.Phone = strings.TrimSpace(in.Phone)
	bakery.Description = strings.TrimSpace(in.Description)

	if err := u.bakeryRepo.Update(ctx, bakery); err != nil {
		return model.Bakery{}, err
	}
	return bakery, nil
}

func (u *BakeryAuthUsecase) Login(ctx context.Context, in LoginInput) (BakeryLoginOutput, error) {
	var out BakeryLoginOutput

	bakery, err := u.bakeryRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	if err := u.verifier.Verify(bakery.PasswordHash, in.Password); err != nil {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(bakery.ID, RoleBakery, now)
	if err != nil {
		return out, err
	}

	out.Bakery = bakery
	out.Token = JwtAccessToken{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}
	return out, nil
}
