package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Regulatory deadline types tracked per vehicle
const (
	DeadlineInspection        = "inspection"
	DeadlineInsurance         = "insurance"
	DeadlineTachograph        = "tachograph"
	DeadlineLiftCertification = "lift_certification"
)

// AllDeadlineTypes lists every deadline type in display order
var AllDeadlineTypes = []string{
	DeadlineInspection,
	DeadlineInsurance,
	DeadlineTachograph,
	DeadlineLiftCertification,
}

// requiredDeadlineTypes maps a vehicle type to the deadline types it must
// carry. Lift certification applies only to "other" vehicles (e.g. vehicles
// with a tail lift); history still shows any type that was ever recorded.
var requiredDeadlineTypes = map[string][]string{
	VehicleTypeTruck:   {DeadlineInspection, DeadlineInsurance, DeadlineTachograph},
	VehicleTypeTrailer: {DeadlineInspection, DeadlineInsurance, DeadlineTachograph},
	VehicleTypeBus:     {DeadlineInspection, DeadlineInsurance, DeadlineTachograph},
	VehicleTypeOther:   {DeadlineInspection, DeadlineInsurance, DeadlineTachograph, DeadlineLiftCertification},
}

// RequiredDeadlineTypes returns the deadline types required for the given
// vehicle type
func RequiredDeadlineTypes(vehicleType string) []string {
	if types, ok := requiredDeadlineTypes[vehicleType]; ok {
		return types
	}
	return requiredDeadlineTypes[VehicleTypeTruck]
}

// ValidDeadlineType reports whether t is a known deadline type
func ValidDeadlineType(t string) bool {
	for _, dt := range AllDeadlineTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// CurrentDeadline holds the structure for the current_deadlines collection in
// mongo. It is a projection of the latest deadline operation per
// (vehicleId, type) pair, never a history.
type CurrentDeadline struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VehicleID primitive.ObjectID `json:"vehicleId" bson:"vehicleId"`
	Type      string             `json:"type" bson:"type"`
	ExpiresAt string             `json:"expiresAt" bson:"expiresAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DeadlineOperation holds the structure for the deadline_operations
// collection in mongo. Rows are append-only.
type DeadlineOperation struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VehicleID     primitive.ObjectID `json:"vehicleId" bson:"vehicleId"`
	DeadlineType  string             `json:"deadlineType" bson:"deadlineType"`
	PerformedByID primitive.ObjectID `json:"performedById" bson:"performedById"`
	PerformedAt   string             `json:"performedAt" bson:"performedAt"`
	NewExpiryDate string             `json:"newExpiryDate" bson:"newExpiryDate"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
