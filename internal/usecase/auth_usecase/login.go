package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// Subject roles carried in the token.
const (
	RoleUser   = "user"
	RoleBakery = "bakery"
)

type LoginInput struct {
	Email    string
	Password string
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type LoginOutput struct {
	User  model.User     `json:"user"`
	Token JwtAccessToken `json:"token"`
}

var ErrInvalidCredentials = errors.New("invalid credentials")

type AccessTokenIssuer interface {
	Issue(subjectID int64, role string, now time.Time) (token string, expiresAt time.Time, err error)
}

type PasswordVerifier interface {
	Verify(hashed string, plain string) error
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(userRepo repository.UserRepository, verifier PasswordVerifier, issuer AccessTokenIssuer, clock Clock) *LoginUsecase {
	return &LoginUsecase{userRepo: userRepo, verifier: verifier, issuer: issuer, clock: clock}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	if err := u.verifier.Verify(user.PasswordHash, in.Password); err != nil {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, RoleUser, now)
	if err != nil {
		return out, err
	}

	out.User = user
	out.Token = JwtAccessToken{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}
	return out, nil
}
