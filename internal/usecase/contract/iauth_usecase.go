package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

// IAuthUseCase covers registration, activation and token based authentication.
type IAuthUseCase interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*entity.User, error)
	Activate(ctx context.Context, code string) error
	Authenticate(ctx context.Context, email, password string) (string, error)
	ResolvePrincipal(ctx context.Context, accessToken string) (*entity.User, error)
	LoginWithOAuth(ctx context.Context, firstName, lastName, email string) (string, error)
}

// IActivationUC issues and redeems email activation codes.
type IActivationUC interface {
	IssueActivation(ctx context.Context, user *entity.User) error
	RedeemActivation(ctx context.Context, code string) (*entity.User, error)
}
