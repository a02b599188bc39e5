package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection        = "users"
	RolesCollection        = "roles"
	TokensCollection       = "tokens"
	BooksCollection        = "books"
	FeedbacksCollection    = "feedbacks"
	TransactionsCollection = "book_transactions"
)

// OpenBorrowIndexName is the partial unique index that allows one open borrow per book and user.
const OpenBorrowIndexName = "uniq_open_borrow_per_user"

// PendingCodeIndexName is the partial unique index that keeps outstanding activation codes distinct.
const PendingCodeIndexName = "uniq_pending_activation_code"

type MongoDBClient struct {
	Client *mongo.Client
}

// NewMongoDBClient connects to uri and verifies the connection with a ping.
func NewMongoDBClient(ctx context.Context, uri string) (*MongoDBClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return &MongoDBClient{Client: client}, nil
}

func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		RolesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		TokensCollection: {
			{
				Keys: bson.D{{Key: "code", Value: 1}},
				Options: options.Index().
					SetName(PendingCodeIndexName).
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"pending": true}),
			},
			{Keys: bson.D{{Key: "code", Value: 1}, {Key: "pending", Value: -1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "pending", Value: 1}}},
		},
		BooksCollection: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "shareable", Value: 1}, {Key: "archived", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		FeedbacksCollection: {
			{Keys: bson.D{{Key: "book_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		TransactionsCollection: {
			{
				Keys: bson.D{{Key: "book_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().
					SetName(OpenBorrowIndexName).
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"returned": false}),
			},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "book_owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
