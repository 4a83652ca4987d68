package databases

//go generate: mockery --name AuditLogDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/flotahub/fleet-api/models"
)

const auditLogName = "audit_logs"

// AuditLogDatabase contains the methods to use with the audit log database.
// Entries are append-only.
type AuditLogDatabase interface {
	InsertOne(ctx context.Context, entry models.AuditLogEntry) (interface{}, error)
	FindPaginated(ctx context.Context, filter interface{}, limit, page int) ([]models.AuditLogEntry, error)
}

type auditLogDatabase struct {
	db DatabaseHelper
}

// NewAuditLogDatabase initializes a new instance of audit log database with the provided db connection
func NewAuditLogDatabase(db DatabaseHelper) AuditLogDatabase {
	return &auditLogDatabase{
		db: db,
	}
}

func (c *auditLogDatabase) InsertOne(ctx context.Context, entry models.AuditLogEntry) (interface{}, error) {
	return c.db.Collection(auditLogName).InsertOne(ctx, entry)
}

func (c *auditLogDatabase) FindPaginated(ctx context.Context, filter interface{}, limit, page int) ([]models.AuditLogEntry, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := c.db.Collection(auditLogName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var entries []models.AuditLogEntry
	if err := cursor.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
