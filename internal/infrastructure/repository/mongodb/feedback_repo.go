package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type feedbackDTO struct {
	ID        string    `bson:"_id"`
	Note      float64   `bson:"note"`
	Comment   string    `bson:"comment"`
	BookID    string    `bson:"book_id"`
	CreatedBy string    `bson:"created_by"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (f *feedbackDTO) ToEntity() *entity.Feedback {
	return &entity.Feedback{
		ID:        f.ID,
		Note:      f.Note,
		Comment:   f.Comment,
		BookID:    f.BookID,
		CreatedBy: f.CreatedBy,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func FromFeedbackEntityToDTO(f *entity.Feedback) *feedbackDTO {
	return &feedbackDTO{
		ID:        f.ID,
		Note:      f.Note,
		Comment:   f.Comment,
		BookID:    f.BookID,
		CreatedBy: f.CreatedBy,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ratingStatsDTO is one row of the per-book note aggregation.
type ratingStatsDTO struct {
	BookID string  `bson:"_id"`
	Sum    float64 `bson:"sum"`
	Count  int64   `bson:"count"`
}

type FeedbackRepository struct {
	collection *mongo.Collection
}

var _ contract.IFeedbackRepository = (*FeedbackRepository)(nil)

func NewFeedbackRepository(collection *mongo.Collection) *FeedbackRepository {
	return &FeedbackRepository{collection: collection}
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *entity.Feedback) error {
	if _, err := r.collection.InsertOne(ctx, FromFeedbackEntityToDTO(feedback)); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) FindFeedbacksByBook(ctx context.Context, bookID string, page entity.PageRequest) ([]*entity.Feedback, int64, error) {
	docs, total, err := findPage[feedbackDTO](ctx, r.collection, bson.M{"book_id": bookID}, page)
	if err != nil {
		return nil, 0, err
	}
	feedbacks := make([]*entity.Feedback, 0, len(docs))
	for i := range docs {
		feedbacks = append(feedbacks, docs[i].ToEntity())
	}
	return feedbacks, total, nil
}

func (r *FeedbackRepository) RatingStatsByBooks(ctx context.Context, bookIDs []string) (map[string]entity.RatingStats, error) {
	out := make(map[string]entity.RatingStats, len(bookIDs))
	if len(bookIDs) == 0 {
		return out, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"book_id": bson.M{"$in": uniqueStrings(bookIDs)}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$book_id",
			"sum":   bson.M{"$sum": "$note"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []ratingStatsDTO
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	for _, row := range rows {
		out[row.BookID] = entity.RatingStats{Sum: row.Sum, Count: row.Count}
	}
	return out, nil
}
