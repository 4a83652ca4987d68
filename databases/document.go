package databases

//go generate: mockery --name DriverDocumentDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/models"
)

const driverDocumentName = "driver_documents"

// DriverDocumentDatabase contains the methods to use with the driver document
// database. Documents are unique per (userId, type) and always written
// through the upsert.
type DriverDocumentDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.DriverDocument, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.DriverDocument, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, documentType string, set bson.M) error
}

type driverDocumentDatabase struct {
	db DatabaseHelper
}

// NewDriverDocumentDatabase initializes a new instance of driver document database with the provided db connection
func NewDriverDocumentDatabase(db DatabaseHelper) DriverDocumentDatabase {
	return &driverDocumentDatabase{
		db: db,
	}
}

func (c *driverDocumentDatabase) FindOne(ctx context.Context, filter interface{}) (*models.DriverDocument, error) {
	document := &models.DriverDocument{}
	err := c.db.Collection(driverDocumentName).FindOne(ctx, filter).Decode(&document)
	if err != nil {
		return nil, err
	}
	return document, nil
}

func (c *driverDocumentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.DriverDocument, error) {
	cursor, err := c.db.Collection(driverDocumentName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var documents []models.DriverDocument
	if err := cursor.Decode(&documents); err != nil {
		return nil, err
	}
	return documents, nil
}

// Upsert touches only the fields in set (plus updatedAt); untouched fields of
// an existing document keep their values. A freshly inserted document is
// inactive unless set says otherwise.
func (c *driverDocumentDatabase) Upsert(ctx context.Context, userID primitive.ObjectID, documentType string, set bson.M) error {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		fields[k] = v
	}
	onInsert := bson.M{"_id": primitive.NewObjectID()}
	if _, ok := fields["isActive"]; !ok {
		onInsert["isActive"] = false
	}
	return upsertByKey(ctx, c.db.Collection(driverDocumentName),
		bson.M{"userId": userID, "type": documentType},
		fields,
		onInsert,
	)
}
