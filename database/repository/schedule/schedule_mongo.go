package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"bookingagent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoScheduleRepo implements Repository over the providers collection.
type MongoScheduleRepo struct {
	providerColl *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo(db *mongo.Database) *MongoScheduleRepo {
	return &MongoScheduleRepo{providerColl: db.Collection("providers")}
}

// providerDoc mirrors the persisted provider shape; only schedule fields are
// projected out.
type providerDoc struct {
	ID       string                   `bson:"_id"`
	Timezone string                   `bson:"timezone"`
	Schedule *models.ProviderSchedule `bson:"schedule"`
}

func (repo *MongoScheduleRepo) GetSchedule(ctx context.Context, providerID string) (*models.ProviderSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc providerDoc
	err := repo.providerColl.FindOne(ctx,
		bson.M{"_id": providerID},
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider %s: %w", providerID, err)
	}

	schedule := doc.Schedule
	if schedule == nil {
		schedule = &models.ProviderSchedule{}
	}
	schedule.ProviderID = providerID
	if schedule.Timezone == "" {
		schedule.Timezone = doc.Timezone
	}
	if schedule.Timezone == "" {
		schedule.Timezone = "UTC"
	}
	return schedule, nil
}
