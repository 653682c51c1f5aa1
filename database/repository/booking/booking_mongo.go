package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookingagent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements Repository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	auditColl   *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		auditColl:   db.Collection("booking_audits"),
	}
}

func (repo *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) FindActiveByUserAndStart(ctx context.Context, userID string, start time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id":    userID,
		"start_time": start,
		"status":     bson.M{"$ne": models.StatusCancelled},
	}
	var booking models.Booking
	err := repo.bookingColl.FindOne(ctx, filter).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check existing booking: %w", err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) ActiveStartTimes(ctx context.Context, providerID string, from, to time.Time, excludeBookingID string) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"start_time":  bson.M{"$gte": from, "$lt": to},
		"status":      bson.M{"$in": []models.BookingStatus{models.StatusPending, models.StatusConfirmed}},
	}
	if excludeBookingID != "" {
		filter["id"] = bson.M{"$ne": excludeBookingID}
	}

	raw, err := repo.bookingColl.Distinct(ctx, "start_time", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking start times: %w", err)
	}

	starts := make([]time.Time, 0, len(raw))
	for _, v := range raw {
		if dt, ok := v.(primitive.DateTime); ok {
			starts = append(starts, dt.Time().UTC())
		}
	}
	return starts, nil
}
