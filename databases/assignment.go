package databases

//go generate: mockery --name AssignmentDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/models"
)

const assignmentName = "vehicle_assignments"

// AssignmentDatabase contains the methods to use with the vehicle assignment
// database. Assign and CloseOpen maintain the invariant of at most one open
// assignment (assignedTo == null) per vehicle.
type AssignmentDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleAssignment, error)
	FindOpenForVehicle(ctx context.Context, vehicleID primitive.ObjectID) (*models.VehicleAssignment, error)
	HasOpenAssignment(ctx context.Context, vehicleID, userID primitive.ObjectID) (bool, error)
	Assign(ctx context.Context, assignment models.VehicleAssignment) (models.VehicleAssignment, error)
	CloseOpen(ctx context.Context, vehicleID primitive.ObjectID) (int64, error)
}

type assignmentDatabase struct {
	db DatabaseHelper
}

// NewAssignmentDatabase initializes a new instance of assignment database with the provided db connection
func NewAssignmentDatabase(db DatabaseHelper) AssignmentDatabase {
	return &assignmentDatabase{
		db: db,
	}
}

func (c *assignmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleAssignment, error) {
	cursor, err := c.db.Collection(assignmentName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var assignments []models.VehicleAssignment
	if err := cursor.Decode(&assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (c *assignmentDatabase) FindOpenForVehicle(ctx context.Context, vehicleID primitive.ObjectID) (*models.VehicleAssignment, error) {
	assignment := &models.VehicleAssignment{}
	err := c.db.Collection(assignmentName).
		FindOne(ctx, bson.M{"vehicleId": vehicleID, "assignedTo": nil}).
		Decode(&assignment)
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (c *assignmentDatabase) HasOpenAssignment(ctx context.Context, vehicleID, userID primitive.ObjectID) (bool, error) {
	count, err := c.db.Collection(assignmentName).CountDocuments(ctx, bson.M{
		"vehicleId":  vehicleID,
		"userId":     userID,
		"assignedTo": nil,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Assign closes any open assignment for the vehicle and opens the new one in
// a single transaction, so concurrent assigns cannot produce two open rows.
func (c *assignmentDatabase) Assign(ctx context.Context, assignment models.VehicleAssignment) (models.VehicleAssignment, error) {
	assignment.ID = primitive.NewObjectID()
	assignment.AssignedTo = nil
	assignment.CreatedAt = time.Now().UTC()
	today := time.Now().UTC().Format(models.DateLayout)

	err := c.db.Client().WithTransaction(ctx, func(sc context.Context) error {
		_, err := c.db.Collection(assignmentName).UpdateMany(sc,
			bson.M{"vehicleId": assignment.VehicleID, "assignedTo": nil},
			bson.M{"$set": bson.M{"assignedTo": today}},
		)
		if err != nil {
			return err
		}
		_, err = c.db.Collection(assignmentName).InsertOne(sc, assignment)
		return err
	})
	if err != nil {
		return models.VehicleAssignment{}, err
	}
	return assignment, nil
}

func (c *assignmentDatabase) CloseOpen(ctx context.Context, vehicleID primitive.ObjectID) (int64, error) {
	today := time.Now().UTC().Format(models.DateLayout)
	res, err := c.db.Collection(assignmentName).UpdateMany(ctx,
		bson.M{"vehicleId": vehicleID, "assignedTo": nil},
		bson.M{"$set": bson.M{"assignedTo": today}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
