package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLogEntry holds the structure for the audit_logs collection in mongo.
// Entries are append-only and never mutated.
type AuditLogEntry struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	Action     string             `json:"action" bson:"action"`
	EntityType string             `json:"entityType" bson:"entityType"`
	EntityID   string             `json:"entityId" bson:"entityId"`
	Details    bson.M             `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
