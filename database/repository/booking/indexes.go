package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookingagent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness constraint over (user_id, start_time)
// for non-cancelled bookings, plus the audit lookup index.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := repo.bookingColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("user_start_active_unique").
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": models.ActiveStatuses},
			}),
	})
	if err != nil {
		return fmt.Errorf("failed to create booking uniqueness index: %w", err)
	}

	_, err = repo.auditColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "changed_at", Value: 1}},
		Options: options.Index().SetName("booking_changed_at"),
	})
	if err != nil {
		return fmt.Errorf("failed to create audit index: %w", err)
	}
	return nil
}
