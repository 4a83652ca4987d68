package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver document types. The first three carry an expiry date, the
// authorizations are plain on/off flags.
const (
	DocumentA1                   = "a1"
	DocumentIMI                  = "imi"
	DocumentEKUZ                 = "ekuz"
	DocumentVehicleAuthorization = "vehicle_authorization"
	DocumentTrailerAuthorization = "trailer_authorization"
)

// ExpiryDocumentTypes lists the driver documents tracked by expiry date
var ExpiryDocumentTypes = []string{DocumentA1, DocumentIMI, DocumentEKUZ}

// AuthorizationDocumentTypes lists the boolean authorization documents
var AuthorizationDocumentTypes = []string{DocumentVehicleAuthorization, DocumentTrailerAuthorization}

// ValidDriverDocumentType reports whether t is a known driver document type
func ValidDriverDocumentType(t string) bool {
	switch t {
	case DocumentA1, DocumentIMI, DocumentEKUZ,
		DocumentVehicleAuthorization, DocumentTrailerAuthorization:
		return true
	}
	return false
}

// DriverDocument holds the structure for the driver_documents collection in
// mongo, unique per (userId, type)
type DriverDocument struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Type      string             `json:"type" bson:"type"`
	ExpiresAt *string            `json:"expiresAt" bson:"expiresAt,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
