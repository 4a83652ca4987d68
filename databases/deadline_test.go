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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/databases/mocks"
	"github.com/flotahub/fleet-api/models"
)

func TestCurrentDeadlineDatabase_Upsert(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	vehicleID := primitive.NewObjectID()

	collectionHelper.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)

	dbHelper.On("Collection", "current_deadlines").Return(collectionHelper)

	deadlineDba := databases.NewCurrentDeadlineDatabase(dbHelper)

	err := deadlineDba.Upsert(context.Background(), vehicleID, models.DeadlineInsurance, "2027-03-31")
	assert.NoError(t, err)

	// keyed by (vehicleId, type), $set moves the date, and the write must be
	// an upsert so a first operation creates the row
	collectionHelper.AssertCalled(t, "UpdateOne", mock.Anything,
		bson.M{"vehicleId": vehicleID, "type": models.DeadlineInsurance},
		mock.MatchedBy(func(v interface{}) bool {
			update, ok := v.(bson.M)
			if !ok {
				return false
			}
			set, ok := update["$set"].(bson.M)
			if !ok || set["expiresAt"] != "2027-03-31" {
				return false
			}
			setOnInsert, ok := update["$setOnInsert"].(bson.M)
			if !ok {
				return false
			}
			_, hasInsertID := setOnInsert["_id"]
			return hasInsertID
		}),
		mock.MatchedBy(func(v interface{}) bool {
			opts, ok := v.(*options.UpdateOptions)
			return ok && opts.Upsert != nil && *opts.Upsert
		}))
}

func TestCurrentDeadlineDatabase_UpsertError(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	dbHelper.On("Collection", "current_deadlines").Return(collectionHelper)

	deadlineDba := databases.NewCurrentDeadlineDatabase(dbHelper)

	err := deadlineDba.Upsert(context.Background(), primitive.NewObjectID(), models.DeadlineInspection, "2026-10-01")
	assert.EqualError(t, err, "mocked-error")
}

func TestCurrentDeadlineDatabase_Find(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	vehicleID := primitive.NewObjectID()

	cursorHelper.
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.CurrentDeadline)
		*arg = []models.CurrentDeadline{
			{VehicleID: vehicleID, Type: models.DeadlineInspection, ExpiresAt: "2026-09-15"},
			{VehicleID: vehicleID, Type: models.DeadlineInsurance, ExpiresAt: "2027-01-20"},
		}
	})

	collectionHelper.
		On("Find", context.Background(), bson.M{"vehicleId": vehicleID}).
		Return(cursorHelper, nil)

	dbHelper.On("Collection", "current_deadlines").Return(collectionHelper)

	deadlineDba := databases.NewCurrentDeadlineDatabase(dbHelper)

	deadlines, err := deadlineDba.Find(context.Background(), bson.M{"vehicleId": vehicleID})
	assert.NoError(t, err)
	assert.Len(t, deadlines, 2)
	assert.Equal(t, models.DeadlineInspection, deadlines[0].Type)
}
