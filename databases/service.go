package databases

//go generate: mockery --name VehicleServiceDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/models"
)

const vehicleServiceName = "vehicle_services"

// VehicleServiceDatabase contains the methods to use with the vehicle service database
type VehicleServiceDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.VehicleService, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleService, error)
	InsertOne(ctx context.Context, service models.VehicleService) (interface{}, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type vehicleServiceDatabase struct {
	db DatabaseHelper
}

// NewVehicleServiceDatabase initializes a new instance of vehicle service database with the provided db connection
func NewVehicleServiceDatabase(db DatabaseHelper) VehicleServiceDatabase {
	return &vehicleServiceDatabase{
		db: db,
	}
}

func (c *vehicleServiceDatabase) FindOne(ctx context.Context, filter interface{}) (*models.VehicleService, error) {
	service := &models.VehicleService{}
	err := c.db.Collection(vehicleServiceName).FindOne(ctx, filter).Decode(&service)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (c *vehicleServiceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleService, error) {
	cursor, err := c.db.Collection(vehicleServiceName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var services []models.VehicleService
	if err := cursor.Decode(&services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *vehicleServiceDatabase) InsertOne(ctx context.Context, service models.VehicleService) (interface{}, error) {
	return c.db.Collection(vehicleServiceName).InsertOne(ctx, service)
}

func (c *vehicleServiceDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return c.db.Collection(vehicleServiceName).UpdateOne(ctx, filter, update)
}

func (c *vehicleServiceDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(vehicleServiceName).DeleteOne(ctx, filter)
}
