package reminderRepo

import (
	"context"
	"fmt"

	"vaxremind/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo returns a ReminderRepository reading from the given collection.
func NewMongoReminderRepo(client *mongo.Client, dbName, collection string) ReminderRepository {
	return &mongoReminderRepo{
		coll: client.Database(dbName).Collection(collection),
	}
}

// List returns every reminder ordered by schedule. A missing or empty collection yields no reminders.
func (r *mongoReminderRepo) List(ctx context.Context) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}, {Key: "scheduledTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("reminderRepo.List: %w", err)
	}
	defer cursor.Close(ctx)

	reminders := make([]models.Reminder, 0)
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("reminderRepo.List: decoding reminders: %w", err)
	}
	return reminders, nil
}
