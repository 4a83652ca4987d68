package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/databases/mocks"
	"github.com/flotahub/fleet-api/models"
)

// runTransaction wires the client mock so WithTransaction simply runs the
// callback, the way the real session does when every write succeeds.
func runTransaction(client *mocks.ClientHelper) {
	client.On("WithTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestDeadlineRecorder_Record(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	clientHelper := &mocks.ClientHelper{}
	operationColl := &mocks.CollectionHelper{}
	deadlineColl := &mocks.CollectionHelper{}

	runTransaction(clientHelper)

	operationColl.
		On("InsertOne", mock.Anything, mock.AnythingOfType("models.DeadlineOperation")).
		Return("mocked-id", nil)

	deadlineColl.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)

	dbHelper.On("Client").Return(clientHelper)
	dbHelper.On("Collection", "deadline_operations").Return(operationColl)
	dbHelper.On("Collection", "current_deadlines").Return(deadlineColl)

	recorder := databases.NewDeadlineRecorder(dbHelper)

	vehicleID := primitive.NewObjectID()
	op, err := recorder.Record(context.Background(), models.DeadlineOperation{
		VehicleID:     vehicleID,
		DeadlineType:  models.DeadlineInspection,
		NewExpiryDate: "2026-12-01",
	})

	assert.NoError(t, err)
	assert.False(t, op.ID.IsZero())
	assert.False(t, op.CreatedAt.IsZero())

	// history row carries the generated id and timestamp
	operationColl.AssertCalled(t, "InsertOne", mock.Anything, mock.MatchedBy(func(v interface{}) bool {
		inserted, ok := v.(models.DeadlineOperation)
		return ok && inserted.ID == op.ID && inserted.NewExpiryDate == "2026-12-01"
	}))

	// projection row is keyed by (vehicleId, type) and moves to the new date
	deadlineColl.AssertCalled(t, "UpdateOne", mock.Anything,
		bson.M{"vehicleId": vehicleID, "type": models.DeadlineInspection},
		mock.MatchedBy(func(v interface{}) bool {
			update, ok := v.(bson.M)
			if !ok {
				return false
			}
			set, ok := update["$set"].(bson.M)
			return ok && set["expiresAt"] == "2026-12-01"
		}),
		mock.Anything)
}

func TestDeadlineRecorder_RecordHistoryFailureSkipsProjection(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	clientHelper := &mocks.ClientHelper{}
	operationColl := &mocks.CollectionHelper{}
	deadlineColl := &mocks.CollectionHelper{}

	runTransaction(clientHelper)

	operationColl.
		On("InsertOne", mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	dbHelper.On("Client").Return(clientHelper)
	dbHelper.On("Collection", "deadline_operations").Return(operationColl)
	dbHelper.On("Collection", "current_deadlines").Return(deadlineColl)

	recorder := databases.NewDeadlineRecorder(dbHelper)

	op, err := recorder.Record(context.Background(), models.DeadlineOperation{
		VehicleID:     primitive.NewObjectID(),
		DeadlineType:  models.DeadlineInsurance,
		NewExpiryDate: "2026-06-15",
	})

	assert.EqualError(t, err, "mocked-error")
	assert.Empty(t, op)
	deadlineColl.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeadlineRecorder_RecordTransactionError(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	clientHelper := &mocks.ClientHelper{}

	clientHelper.On("WithTransaction", mock.Anything, mock.Anything).
		Return(errors.New("transaction aborted"))

	dbHelper.On("Client").Return(clientHelper)

	recorder := databases.NewDeadlineRecorder(dbHelper)

	op, err := recorder.Record(context.Background(), models.DeadlineOperation{
		VehicleID:     primitive.NewObjectID(),
		DeadlineType:  models.DeadlineTachograph,
		NewExpiryDate: "2027-01-01",
	})

	assert.EqualError(t, err, "transaction aborted")
	assert.Empty(t, op)
}
