package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleNote holds the structure for the vehicle_notes collection in mongo.
// Notes double as lightweight tasks: optionally assigned to a driver,
// optionally visible to admins only, with a done flag.
type VehicleNote struct {
	ID           primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	VehicleID    primitive.ObjectID  `json:"vehicleId" bson:"vehicleId"`
	Content      string              `json:"content" bson:"content"`
	CreatedByID  primitive.ObjectID  `json:"createdById" bson:"createdById"`
	AssignedToID *primitive.ObjectID `json:"assignedToId" bson:"assignedToId,omitempty"`
	IsAdminOnly  bool                `json:"isAdminOnly" bson:"isAdminOnly"`
	IsDone       bool                `json:"isDone" bson:"isDone"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}
