package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle types tracked by the fleet
const (
	VehicleTypeTruck   = "truck"
	VehicleTypeTrailer = "trailer"
	VehicleTypeBus     = "bus"
	VehicleTypeOther   = "other"
)

// Vehicle holds the structure for the vehicles collection in mongo
type Vehicle struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Type               string             `json:"type" bson:"type"`
	RegistrationNumber string             `json:"registrationNumber" bson:"registrationNumber"`
	Vin                string             `json:"vin,omitempty" bson:"vin,omitempty"`
	Brand              string             `json:"brand" bson:"brand"`
	Model              string             `json:"model" bson:"model"`
	Year               *int               `json:"year" bson:"year,omitempty"`
	Notes              string             `json:"notes,omitempty" bson:"notes,omitempty"`
	IsActive           bool               `json:"isActive" bson:"isActive"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ValidVehicleType reports whether t is a known vehicle type
func ValidVehicleType(t string) bool {
	switch t {
	case VehicleTypeTruck, VehicleTypeTrailer, VehicleTypeBus, VehicleTypeOther:
		return true
	}
	return false
}
