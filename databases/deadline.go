package databases

//go generate: mockery --name CurrentDeadlineDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/models"
)

const currentDeadlineName = "current_deadlines"

// CurrentDeadlineDatabase contains the methods to use with the current
// deadline projection. There is at most one row per (vehicleId, type).
type CurrentDeadlineDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.CurrentDeadline, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.CurrentDeadline, error)
	Upsert(ctx context.Context, vehicleID primitive.ObjectID, deadlineType, expiresAt string) error
}

type currentDeadlineDatabase struct {
	db DatabaseHelper
}

// NewCurrentDeadlineDatabase initializes a new instance of current deadline database with the provided db connection
func NewCurrentDeadlineDatabase(db DatabaseHelper) CurrentDeadlineDatabase {
	return &currentDeadlineDatabase{
		db: db,
	}
}

func (c *currentDeadlineDatabase) FindOne(ctx context.Context, filter interface{}) (*models.CurrentDeadline, error) {
	deadline := &models.CurrentDeadline{}
	err := c.db.Collection(currentDeadlineName).FindOne(ctx, filter).Decode(&deadline)
	if err != nil {
		return nil, err
	}
	return deadline, nil
}

func (c *currentDeadlineDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.CurrentDeadline, error) {
	cursor, err := c.db.Collection(currentDeadlineName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var deadlines []models.CurrentDeadline
	if err := cursor.Decode(&deadlines); err != nil {
		return nil, err
	}
	return deadlines, nil
}

func (c *currentDeadlineDatabase) Upsert(ctx context.Context, vehicleID primitive.ObjectID, deadlineType, expiresAt string) error {
	return upsertCurrentDeadline(ctx, c.db.Collection(currentDeadlineName), vehicleID, deadlineType, expiresAt)
}

// upsertCurrentDeadline moves the projection forward for one
// (vehicleId, type) pair. Shared with the deadline recorder so the
// transactional path and the standalone path cannot diverge.
func upsertCurrentDeadline(ctx context.Context, coll CollectionHelper, vehicleID primitive.ObjectID, deadlineType, expiresAt string) error {
	return upsertByKey(ctx, coll,
		bson.M{"vehicleId": vehicleID, "type": deadlineType},
		bson.M{"expiresAt": expiresAt, "updatedAt": time.Now().UTC()},
		bson.M{"_id": primitive.NewObjectID()},
	)
}
