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

type bookTransactionDTO struct {
	ID             string    `bson:"_id"`
	BookID         string    `bson:"book_id"`
	BookOwnerID    string    `bson:"book_owner_id"`
	UserID         string    `bson:"user_id"`
	Returned       bool      `bson:"returned"`
	ReturnApproved bool      `bson:"return_approved"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func (t *bookTransactionDTO) ToEntity() *entity.BookTransaction {
	return &entity.BookTransaction{
		ID:             t.ID,
		BookID:         t.BookID,
		BookOwnerID:    t.BookOwnerID,
		UserID:         t.UserID,
		Returned:       t.Returned,
		ReturnApproved: t.ReturnApproved,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func FromBookTransactionEntityToDTO(t *entity.BookTransaction) *bookTransactionDTO {
	return &bookTransactionDTO{
		ID:             t.ID,
		BookID:         t.BookID,
		BookOwnerID:    t.BookOwnerID,
		UserID:         t.UserID,
		Returned:       t.Returned,
		ReturnApproved: t.ReturnApproved,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// BookTransactionRepository relies on the partial unique index created by
// database.EnsureIndexes to reject a second open borrow of the same book by the same user.
type BookTransactionRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

var _ contract.IBookTransactionRepository = (*BookTransactionRepository)(nil)

func NewBookTransactionRepository(collection *mongo.Collection) *BookTransactionRepository {
	return &BookTransactionRepository{collection: collection, now: time.Now}
}

func (r *BookTransactionRepository) CreateTransaction(ctx context.Context, tx *entity.BookTransaction) error {
	if _, err := r.collection.InsertOne(ctx, FromBookTransactionEntityToDTO(tx)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrBookAlreadyBorrowed
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (r *BookTransactionRepository) HasOpenTransaction(ctx context.Context, bookID, userID string) (bool, error) {
	filter := bson.M{"book_id": bookID, "user_id": userID, "returned": false}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count > 0, nil
}

func (r *BookTransactionRepository) MarkReturned(ctx context.Context, bookID, userID string) (*entity.BookTransaction, error) {
	filter := bson.M{"book_id": bookID, "user_id": userID, "returned": false}
	update := bson.M{"$set": bson.M{"returned": true, "updated_at": r.now().UTC()}}
	tx, err := r.transition(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrBookNotBorrowed
	}
	return tx, err
}

func (r *BookTransactionRepository) MarkReturnApproved(ctx context.Context, bookID, ownerID string) (*entity.BookTransaction, error) {
	filter := bson.M{
		"book_id":         bookID,
		"book_owner_id":   ownerID,
		"returned":        true,
		"return_approved": false,
	}
	update := bson.M{"$set": bson.M{"return_approved": true, "updated_at": r.now().UTC()}}
	tx, err := r.transition(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrReturnNotPending
	}
	return tx, err
}

// transition applies update to the oldest matching transaction in one round trip.
func (r *BookTransactionRepository) transition(ctx context.Context, filter, update bson.M) (*entity.BookTransaction, error) {
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetReturnDocument(options.After)

	var dto bookTransactionDTO
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&dto)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return dto.ToEntity(), nil
}

func (r *BookTransactionRepository) FindBorrowedByUser(ctx context.Context, userID string, page entity.PageRequest) ([]*entity.BookTransaction, int64, error) {
	return r.findTransactions(ctx, bson.M{"user_id": userID}, page)
}

func (r *BookTransactionRepository) FindReturnedToOwner(ctx context.Context, ownerID string, page entity.PageRequest) ([]*entity.BookTransaction, int64, error) {
	return r.findTransactions(ctx, bson.M{"book_owner_id": ownerID}, page)
}

func (r *BookTransactionRepository) findTransactions(ctx context.Context, filter bson.M, page entity.PageRequest) ([]*entity.BookTransaction, int64, error) {
	docs, total, err := findPage[bookTransactionDTO](ctx, r.collection, filter, page)
	if err != nil {
		return nil, 0, err
	}
	txs := make([]*entity.BookTransaction, 0, len(docs))
	for i := range docs {
		txs = append(txs, docs[i].ToEntity())
	}
	return txs, total, nil
}
