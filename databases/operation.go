package databases

//go generate: mockery --name DeadlineOperationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/models"
)

const operationName = "deadline_operations"

// DeadlineOperationDatabase contains the methods to use with the deadline
// operation history. The collection is append-only; there is deliberately no
// update or delete here.
type DeadlineOperationDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.DeadlineOperation, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type deadlineOperationDatabase struct {
	db DatabaseHelper
}

// NewDeadlineOperationDatabase initializes a new instance of deadline operation database with the provided db connection
func NewDeadlineOperationDatabase(db DatabaseHelper) DeadlineOperationDatabase {
	return &deadlineOperationDatabase{
		db: db,
	}
}

func (c *deadlineOperationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.DeadlineOperation, error) {
	cursor, err := c.db.Collection(operationName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var operations []models.DeadlineOperation
	if err := cursor.Decode(&operations); err != nil {
		return nil, err
	}
	return operations, nil
}

func (c *deadlineOperationDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(operationName).CountDocuments(ctx, filter)
}
