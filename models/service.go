package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workshop service types
const (
	ServiceOilChange  = "oil_change"
	ServiceRepair     = "repair"
	ServiceTires      = "tires"
	ServiceBrakes     = "brakes"
	ServiceElectrical = "electrical"
	ServiceOther      = "other"
)

// ValidServiceType reports whether t is a known service type
func ValidServiceType(t string) bool {
	switch t {
	case ServiceOilChange, ServiceRepair, ServiceTires,
		ServiceBrakes, ServiceElectrical, ServiceOther:
		return true
	}
	return false
}

// VehicleService holds the structure for the vehicle_services collection in
// mongo (completed workshop visits)
type VehicleService struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VehicleID   primitive.ObjectID `json:"vehicleId" bson:"vehicleId"`
	Type        string             `json:"type" bson:"type"`
	Description string             `json:"description" bson:"description"`
	PerformedAt string             `json:"performedAt" bson:"performedAt"`
	Cost        *float64           `json:"cost" bson:"cost,omitempty"`
	Mileage     *int               `json:"mileage" bson:"mileage,omitempty"`
	Workshop    string             `json:"workshop,omitempty" bson:"workshop,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedByID primitive.ObjectID `json:"createdById" bson:"createdById"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// PlannedVehicleService holds the structure for the planned_vehicle_services
// collection in mongo (future workshop visits shown on the calendar)
type PlannedVehicleService struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VehicleID   primitive.ObjectID `json:"vehicleId" bson:"vehicleId"`
	Type        string             `json:"type" bson:"type"`
	PlannedDate string             `json:"plannedDate" bson:"plannedDate"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedByID primitive.ObjectID `json:"createdById" bson:"createdById"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
