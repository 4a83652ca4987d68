package databases

//go generate: mockery --name VehicleNoteDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/models"
)

const vehicleNoteName = "vehicle_notes"

// VehicleNoteDatabase contains the methods to use with the vehicle note database
type VehicleNoteDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.VehicleNote, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleNote, error)
	InsertOne(ctx context.Context, note models.VehicleNote) (interface{}, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type vehicleNoteDatabase struct {
	db DatabaseHelper
}

// NewVehicleNoteDatabase initializes a new instance of vehicle note database with the provided db connection
func NewVehicleNoteDatabase(db DatabaseHelper) VehicleNoteDatabase {
	return &vehicleNoteDatabase{
		db: db,
	}
}

func (c *vehicleNoteDatabase) FindOne(ctx context.Context, filter interface{}) (*models.VehicleNote, error) {
	note := &models.VehicleNote{}
	err := c.db.Collection(vehicleNoteName).FindOne(ctx, filter).Decode(&note)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (c *vehicleNoteDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleNote, error) {
	cursor, err := c.db.Collection(vehicleNoteName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var notes []models.VehicleNote
	if err := cursor.Decode(&notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *vehicleNoteDatabase) InsertOne(ctx context.Context, note models.VehicleNote) (interface{}, error) {
	return c.db.Collection(vehicleNoteName).InsertOne(ctx, note)
}

func (c *vehicleNoteDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return c.db.Collection(vehicleNoteName).UpdateOne(ctx, filter, update)
}

func (c *vehicleNoteDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(vehicleNoteName).DeleteOne(ctx, filter)
}
