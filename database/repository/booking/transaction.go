package bookingRepo

import (
	"context"
	"fmt"

	"bookingagent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UpdateStatusWithAudit applies the booking update and inserts the audit
// entry inside a single MongoDB transaction.
func (repo *MongoBookingRepo) UpdateStatusWithAudit(
	ctx context.Context,
	bookingID string,
	fields UpdateFields,
	audit *models.BookingAudit,
) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	set := bson.M{
		"status":     fields.Status,
		"updated_at": fields.UpdatedAt,
	}
	if fields.CancellationReason != "" {
		set["cancellation_reason"] = fields.CancellationReason
	}
	if fields.NewStartTime != nil {
		set["start_time"] = *fields.NewStartTime
	}

	txnFn := func(sc mongo.SessionContext) error {
		res, err := repo.bookingColl.UpdateOne(sc, bson.M{"id": bookingID}, bson.M{"$set": set})
		if err != nil {
			return fmt.Errorf("booking update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		if _, err := repo.auditColl.InsertOne(sc, audit); err != nil {
			return fmt.Errorf("audit insert failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrNotFound {
			return err
		}
		return fmt.Errorf("status transition failed: %w", err)
	}

	return nil
}
