package databases

//go generate: mockery --name DeadlineRecorder

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flotahub/fleet-api/models"
)

// DeadlineRecorder appends a deadline operation to history and moves the
// current-deadline projection forward, atomically. A crash can never leave
// one write without the other.
type DeadlineRecorder interface {
	Record(ctx context.Context, op models.DeadlineOperation) (models.DeadlineOperation, error)
}

type deadlineRecorder struct {
	db DatabaseHelper
}

// NewDeadlineRecorder initializes a new instance of deadline recorder with the provided db connection
func NewDeadlineRecorder(db DatabaseHelper) DeadlineRecorder {
	return &deadlineRecorder{
		db: db,
	}
}

func (r *deadlineRecorder) Record(ctx context.Context, op models.DeadlineOperation) (models.DeadlineOperation, error) {
	op.ID = primitive.NewObjectID()
	op.CreatedAt = time.Now().UTC()

	err := r.db.Client().WithTransaction(ctx, func(sc context.Context) error {
		if _, err := r.db.Collection(operationName).InsertOne(sc, op); err != nil {
			return err
		}
		return upsertCurrentDeadline(sc, r.db.Collection(currentDeadlineName), op.VehicleID, op.DeadlineType, op.NewExpiryDate)
	})
	if err != nil {
		return models.DeadlineOperation{}, err
	}
	return op, nil
}
