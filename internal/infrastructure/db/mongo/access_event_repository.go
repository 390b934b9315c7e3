package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

const accessEventsCollection = "access_events"

// AccessEventRepository writes the access audit trail.
type AccessEventRepository struct {
	db *mongo.Database
}

func NewAccessEventRepository(db *mongo.Database) *AccessEventRepository {
	return &AccessEventRepository{db: db}
}

// Insert persists an access event to the access_events audit collection.
func (r *AccessEventRepository) Insert(ctx context.Context, event *domain.AccessEvent) error {
	doc := bson.M{
		"kind":        string(event.Kind),
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.UserID != "" {
		doc["user_id"] = event.UserID
	}
	if event.Role != domain.RoleUnknown {
		doc["role"] = string(event.Role)
	}
	if event.View != "" {
		doc["view"] = string(event.View)
		doc["path"] = event.Path
	}
	if event.Outcome != "" {
		doc["outcome"] = string(event.Outcome)
	}
	if event.RedirectTo != "" {
		doc["redirect_to"] = event.RedirectTo
	}
	if event.RemoteIP != "" {
		doc["remote_ip"] = event.RemoteIP
	}

	if _, err := r.db.Collection(accessEventsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert access event: %w", err)
	}
	return nil
}
