package databases

//go generate: mockery --name PlannedServiceDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/models"
)

const plannedServiceName = "planned_vehicle_services"

// PlannedServiceDatabase contains the methods to use with the planned vehicle service database
type PlannedServiceDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.PlannedVehicleService, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PlannedVehicleService, error)
	InsertOne(ctx context.Context, planned models.PlannedVehicleService) (interface{}, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type plannedServiceDatabase struct {
	db DatabaseHelper
}

// NewPlannedServiceDatabase initializes a new instance of planned service database with the provided db connection
func NewPlannedServiceDatabase(db DatabaseHelper) PlannedServiceDatabase {
	return &plannedServiceDatabase{
		db: db,
	}
}

func (c *plannedServiceDatabase) FindOne(ctx context.Context, filter interface{}) (*models.PlannedVehicleService, error) {
	planned := &models.PlannedVehicleService{}
	err := c.db.Collection(plannedServiceName).FindOne(ctx, filter).Decode(&planned)
	if err != nil {
		return nil, err
	}
	return planned, nil
}

func (c *plannedServiceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PlannedVehicleService, error) {
	cursor, err := c.db.Collection(plannedServiceName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var planned []models.PlannedVehicleService
	if err := cursor.Decode(&planned); err != nil {
		return nil, err
	}
	return planned, nil
}

func (c *plannedServiceDatabase) InsertOne(ctx context.Context, planned models.PlannedVehicleService) (interface{}, error) {
	return c.db.Collection(plannedServiceName).InsertOne(ctx, planned)
}

func (c *plannedServiceDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return c.db.Collection(plannedServiceName).UpdateOne(ctx, filter, update)
}

func (c *plannedServiceDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(plannedServiceName).DeleteOne(ctx, filter)
}
