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
)

type bookDTO struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	AuthorName string    `bson:"author_name"`
	ISBN       string    `bson:"isbn"`
	Synopsis   string    `bson:"synopsis"`
	BookCover  string    `bson:"book_cover,omitempty"`
	Archived   bool      `bson:"archived"`
	Shareable  bool      `bson:"shareable"`
	OwnerID    string    `bson:"owner_id"`
	CreatedBy  string    `bson:"created_by"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (b *bookDTO) ToEntity() *entity.Book {
	return &entity.Book{
		ID:         b.ID,
		Title:      b.Title,
		AuthorName: b.AuthorName,
		ISBN:       b.ISBN,
		Synopsis:   b.Synopsis,
		BookCover:  b.BookCover,
		Archived:   b.Archived,
		Shareable:  b.Shareable,
		OwnerID:    b.OwnerID,
		CreatedBy:  b.CreatedBy,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func FromBookEntityToDTO(b *entity.Book) *bookDTO {
	return &bookDTO{
		ID:         b.ID,
		Title:      b.Title,
		AuthorName: b.AuthorName,
		ISBN:       b.ISBN,
		Synopsis:   b.Synopsis,
		BookCover:  b.BookCover,
		Archived:   b.Archived,
		Shareable:  b.Shareable,
		OwnerID:    b.OwnerID,
		CreatedBy:  b.CreatedBy,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

type BookRepository struct {
	collection *mongo.Collection
}

var _ contract.IBookRepository = (*BookRepository)(nil)

func NewBookRepository(collection *mongo.Collection) *BookRepository {
	return &BookRepository{collection: collection}
}

func (r *BookRepository) CreateBook(ctx context.Context, book *entity.Book) error {
	if _, err := r.collection.InsertOne(ctx, FromBookEntityToDTO(book)); err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

// UpdateBook overwrites every mutable field; owner and creation data never change.
func (r *BookRepository) UpdateBook(ctx context.Context, book *entity.Book) error {
	update := bson.M{"$set": bson.M{
		"title":       book.Title,
		"author_name": book.AuthorName,
		"isbn":        book.ISBN,
		"synopsis":    book.Synopsis,
		"book_cover":  book.BookCover,
		"archived":    book.Archived,
		"shareable":   book.Shareable,
		"updated_at":  book.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": book.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if result.MatchedCount == 0 {
		return entity.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) GetBookByID(ctx context.Context, id string) (*entity.Book, error) {
	var dto bookDTO
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dto)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return dto.ToEntity(), nil
}

func (r *BookRepository) GetBooksByIDs(ctx context.Context, ids []string) (map[string]*entity.Book, error) {
	out := make(map[string]*entity.Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": uniqueStrings(ids)}})
	if err != nil {
		return nil, fmt.Errorf("failed to find books: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookDTO
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	for i := range docs {
		out[docs[i].ID] = docs[i].ToEntity()
	}
	return out, nil
}

func (r *BookRepository) FindDisplayableBooks(ctx context.Context, excludeOwnerID string, page entity.PageRequest) ([]*entity.Book, int64, error) {
	filter := bson.M{
		"archived":  false,
		"shareable": true,
		"owner_id":  bson.M{"$ne": excludeOwnerID},
	}
	return r.findBooks(ctx, filter, page)
}

func (r *BookRepository) FindBooksByOwner(ctx context.Context, ownerID string, page entity.PageRequest) ([]*entity.Book, int64, error) {
	return r.findBooks(ctx, bson.M{"owner_id": ownerID}, page)
}

func (r *BookRepository) findBooks(ctx context.Context, filter bson.M, page entity.PageRequest) ([]*entity.Book, int64, error) {
	docs, total, err := findPage[bookDTO](ctx, r.collection, filter, page)
	if err != nil {
		return nil, 0, err
	}
	books := make([]*entity.Book, 0, len(docs))
	for i := range docs {
		books = append(books, docs[i].ToEntity())
	}
	return books, total, nil
}
