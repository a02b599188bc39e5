package contract

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

type IEmailService interface {
	SendEmail(ctx context.Context, msg entity.EmailMessage) error
}

// IMailDispatcher queues email for background delivery.
type IMailDispatcher interface {
	Dispatch(msg entity.EmailMessage)
}

// IFileStorage persists uploaded bytes and returns the stored location.
type IFileStorage interface {
	SaveFile(ctx context.Context, data []byte, originalName, ownerID string) (string, error)
	ReadFile(ctx context.Context, location string) ([]byte, error)
}

type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hash string) error
}

type IRandomGenerator interface {
	GenerateNumericCode(length int) (string, error)
	GenerateRandomToken(length int) (string, error)
}

type IUUIDGenerator interface {
	NewUUID() string
}
