package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ---------- DTO layer ------------------
type tokenDTO struct {
	ID           string     `bson:"_id"`
	Code         string     `bson:"code"`
	UserID       string     `bson:"user_id"`
	CreatedAt    time.Time  `bson:"created_at"`
	ExpiresAt    time.Time  `bson:"expires_at"`
	ValidatedAt  *time.Time `bson:"validated_at,omitempty"`
	Pending      bool       `bson:"pending"`
	SupersededAt *time.Time `bson:"superseded_at,omitempty"`
}

func (t *tokenDTO) ToEntity() *entity.ActivationToken {
	return &entity.ActivationToken{
		ID:           t.ID,
		Code:         t.Code,
		UserID:       t.UserID,
		CreatedAt:    t.CreatedAt,
		ExpiresAt:    t.ExpiresAt,
		ValidatedAt:  t.ValidatedAt,
		Pending:      t.Pending,
		SupersededAt: t.SupersededAt,
	}
}

func FromTokenEntityToDTO(t *entity.ActivationToken) *tokenDTO {
	return &tokenDTO{
		ID:           t.ID,
		Code:         t.Code,
		UserID:       t.UserID,
		CreatedAt:    t.CreatedAt,
		ExpiresAt:    t.ExpiresAt,
		ValidatedAt:  t.ValidatedAt,
		Pending:      t.Pending,
		SupersededAt: t.SupersededAt,
	}
}

// ---------------------------------------

type TokenRepository struct {
	Collection *mongo.Collection
}

// check in compile time if TokenRepository implements ITokenRepository
var _ contract.ITokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(colln *mongo.Collection) *TokenRepository {
	return &TokenRepository{
		Collection: colln,
	}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *entity.ActivationToken) error {
	if _, err := r.Collection.InsertOne(ctx, FromTokenEntityToDTO(token)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrActivationCodeTaken
		}
		return fmt.Errorf("failed to insert token: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetTokenByCode(ctx context.Context, code string) (*entity.ActivationToken, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "pending", Value: -1}, {Key: "created_at", Value: -1}})
	var dto tokenDTO
	err := r.Collection.FindOne(ctx, bson.M{"code": code}, opts).Decode(&dto)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}
	return dto.ToEntity(), nil
}

func (r *TokenRepository) MarkValidated(ctx context.Context, id string, at time.Time) error {
	result, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id, "pending": true},
		bson.M{"$set": bson.M{"validated_at": at, "pending": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}
	if result.MatchedCount == 0 {
		return entity.ErrInvalidToken
	}
	return nil
}

func (r *TokenRepository) SupersedePending(ctx context.Context, userID string, at time.Time) error {
	_, err := r.Collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "pending": true},
		bson.M{"$set": bson.M{"superseded_at": at, "pending": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to supersede tokens: %w", err)
	}
	return nil
}
