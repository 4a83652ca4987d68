package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleAssignment holds the structure for the vehicle_assignments
// collection in mongo. A nil AssignedTo marks the assignment as open; the
// assign workflow guarantees at most one open assignment per vehicle.
type VehicleAssignment struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VehicleID    primitive.ObjectID `json:"vehicleId" bson:"vehicleId"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId"`
	AssignedFrom string             `json:"assignedFrom" bson:"assignedFrom"`
	AssignedTo   *string            `json:"assignedTo" bson:"assignedTo"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// AssignmentWithDriver pairs an open assignment with the driver's name for
// display on the vehicle detail page
type AssignmentWithDriver struct {
	VehicleAssignment `bson:",inline"`
	DriverName        string `json:"driverName" bson:"driverName"`
}
