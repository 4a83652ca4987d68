package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/databases/mocks"
	"github.com/flotahub/fleet-api/models"
)

func TestAssignmentDatabase_Assign(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	clientHelper := &mocks.ClientHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	runTransaction(clientHelper)

	vehicleID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	today := time.Now().UTC().Format(models.DateLayout)

	collectionHelper.
		On("UpdateMany", mock.Anything,
			bson.M{"vehicleId": vehicleID, "assignedTo": nil},
			bson.M{"$set": bson.M{"assignedTo": today}}).
		Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)

	collectionHelper.
		On("InsertOne", mock.Anything, mock.AnythingOfType("models.VehicleAssignment")).
		Return("mocked-id", nil)

	dbHelper.On("Client").Return(clientHelper)
	dbHelper.On("Collection", "vehicle_assignments").Return(collectionHelper)

	assignmentDba := databases.NewAssignmentDatabase(dbHelper)

	assignment, err := assignmentDba.Assign(context.Background(), models.VehicleAssignment{
		VehicleID:    vehicleID,
		UserID:       userID,
		AssignedFrom: today,
	})

	assert.NoError(t, err)
	assert.False(t, assignment.ID.IsZero())
	assert.Nil(t, assignment.AssignedTo)

	// the previous open row is closed before the new one is opened
	collectionHelper.AssertCalled(t, "UpdateMany", mock.Anything,
		bson.M{"vehicleId": vehicleID, "assignedTo": nil},
		bson.M{"$set": bson.M{"assignedTo": today}})
	collectionHelper.AssertCalled(t, "InsertOne", mock.Anything, mock.MatchedBy(func(v interface{}) bool {
		inserted, ok := v.(models.VehicleAssignment)
		return ok && inserted.VehicleID == vehicleID && inserted.UserID == userID && inserted.AssignedTo == nil
	}))
}

func TestAssignmentDatabase_AssignCloseFailureSkipsInsert(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	clientHelper := &mocks.ClientHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	runTransaction(clientHelper)

	collectionHelper.
		On("UpdateMany", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	dbHelper.On("Client").Return(clientHelper)
	dbHelper.On("Collection", "vehicle_assignments").Return(collectionHelper)

	assignmentDba := databases.NewAssignmentDatabase(dbHelper)

	assignment, err := assignmentDba.Assign(context.Background(), models.VehicleAssignment{
		VehicleID: primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
	})

	assert.EqualError(t, err, "mocked-error")
	assert.Empty(t, assignment)
	collectionHelper.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestAssignmentDatabase_HasOpenAssignment(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	vehicleID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	strangerID := primitive.NewObjectID()

	collectionHelper.
		On("CountDocuments", mock.Anything, bson.M{"vehicleId": vehicleID, "userId": ownerID, "assignedTo": nil}).
		Return(int64(1), nil)
	collectionHelper.
		On("CountDocuments", mock.Anything, bson.M{"vehicleId": vehicleID, "userId": strangerID, "assignedTo": nil}).
		Return(int64(0), nil)

	dbHelper.On("Collection", "vehicle_assignments").Return(collectionHelper)

	assignmentDba := databases.NewAssignmentDatabase(dbHelper)

	ok, err := assignmentDba.HasOpenAssignment(context.Background(), vehicleID, ownerID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = assignmentDba.HasOpenAssignment(context.Background(), vehicleID, strangerID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestAssignmentDatabase_CloseOpen(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	vehicleID := primitive.NewObjectID()
	today := time.Now().UTC().Format(models.DateLayout)

	collectionHelper.
		On("UpdateMany", mock.Anything,
			bson.M{"vehicleId": vehicleID, "assignedTo": nil},
			bson.M{"$set": bson.M{"assignedTo": today}}).
		Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)

	dbHelper.On("Collection", "vehicle_assignments").Return(collectionHelper)

	assignmentDba := databases.NewAssignmentDatabase(dbHelper)

	closed, err := assignmentDba.CloseOpen(context.Background(), vehicleID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), closed)
}
