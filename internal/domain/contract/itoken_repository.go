package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

type ITokenRepository interface {
	// CreateToken fails with entity.ErrActivationCodeTaken when another pending token holds the code.
	CreateToken(ctx context.Context, token *entity.ActivationToken) error
	// GetTokenByCode prefers the pending token carrying code, then the most recently issued one.
	GetTokenByCode(ctx context.Context, code string) (*entity.ActivationToken, error)
	// MarkValidated claims a pending token. It fails with entity.ErrInvalidToken when the token is no longer pending.
	MarkValidated(ctx context.Context, id string, at time.Time) error
	SupersedePending(ctx context.Context, userID string, at time.Time) error
}
