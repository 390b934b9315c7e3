package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

const salesCollection = "sale_histories"

// SaleRepository keeps one document per user holding the ordered list of
// sale entries.
type SaleRepository struct {
	coll *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{coll: db.Collection(salesCollection)}
}

type saleHistoryDoc struct {
	UserID    string             `bson:"user_id"`
	Entries   []domain.SaleEntry `bson:"entries"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// EnsureIndexes creates the unique user index.
func (r *SaleRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create sale indexes: %w", err)
	}
	return nil
}

func (r *SaleRepository) History(ctx context.Context, userID string) (domain.SaleHistory, error) {
	var doc saleHistoryDoc
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.SaleHistory{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sale history: %w", err)
	}
	return normalise(doc.Entries), nil
}

// Append pushes entry and returns the updated history, creating the
// document on first use.
func (r *SaleRepository) Append(ctx context.Context, userID string, entry domain.SaleEntry) (domain.SaleHistory, error) {
	entry.Date = entry.Date.UTC()
	update := bson.M{
		"$push": bson.M{"entries": entry},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc saleHistoryDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("append sale: %w", err)
	}
	return normalise(doc.Entries), nil
}

func normalise(entries []domain.SaleEntry) domain.SaleHistory {
	h := make(domain.SaleHistory, len(entries))
	for i, e := range entries {
		e.Date = e.Date.UTC()
		h[i] = e
	}
	return h
}
