package databases_test

import (
	"context"
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

func TestDriverDocumentDatabase_UpsertDefaultsInactiveOnInsert(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	userID := primitive.NewObjectID()

	collectionHelper.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)

	dbHelper.On("Collection", "driver_documents").Return(collectionHelper)

	documentDba := databases.NewDriverDocumentDatabase(dbHelper)

	err := documentDba.Upsert(context.Background(), userID, models.DocumentA1, bson.M{"expiresAt": nil})
	assert.NoError(t, err)

	// a fresh document without an explicit flag starts inactive
	collectionHelper.AssertCalled(t, "UpdateOne", mock.Anything,
		bson.M{"userId": userID, "type": models.DocumentA1},
		mock.MatchedBy(func(v interface{}) bool {
			update, ok := v.(bson.M)
			if !ok {
				return false
			}
			setOnInsert, ok := update["$setOnInsert"].(bson.M)
			return ok && setOnInsert["isActive"] == false
		}),
		mock.Anything)
}

func TestDriverDocumentDatabase_UpsertKeepsExplicitFlagOutOfInsertDefaults(t *testing.T) {

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	userID := primitive.NewObjectID()

	collectionHelper.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)

	dbHelper.On("Collection", "driver_documents").Return(collectionHelper)

	documentDba := databases.NewDriverDocumentDatabase(dbHelper)

	err := documentDba.Upsert(context.Background(), userID, models.DocumentEKUZ, bson.M{"isActive": true})
	assert.NoError(t, err)

	// isActive must not appear in both $set and $setOnInsert
	collectionHelper.AssertCalled(t, "UpdateOne", mock.Anything,
		bson.M{"userId": userID, "type": models.DocumentEKUZ},
		mock.MatchedBy(func(v interface{}) bool {
			update, ok := v.(bson.M)
			if !ok {
				return false
			}
			set, ok := update["$set"].(bson.M)
			if !ok || set["isActive"] != true {
				return false
			}
			setOnInsert, ok := update["$setOnInsert"].(bson.M)
			if !ok {
				return false
			}
			_, conflict := setOnInsert["isActive"]
			return !conflict
		}),
		mock.Anything)
}
