package databases

//go generate: mockery --name FileAttachmentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/models"
)

const fileAttachmentName = "file_attachments"

// FileAttachmentDatabase contains the methods to use with the file attachment database
type FileAttachmentDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FileAttachment, error)
	InsertOne(ctx context.Context, attachment models.FileAttachment) (interface{}, error)
}

type fileAttachmentDatabase struct {
	db DatabaseHelper
}

// NewFileAttachmentDatabase initializes a new instance of file attachment database with the provided db connection
func NewFileAttachmentDatabase(db DatabaseHelper) FileAttachmentDatabase {
	return &fileAttachmentDatabase{
		db: db,
	}
}

func (c *fileAttachmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FileAttachment, error) {
	cursor, err := c.db.Collection(fileAttachmentName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var attachments []models.FileAttachment
	if err := cursor.Decode(&attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

func (c *fileAttachmentDatabase) InsertOne(ctx context.Context, attachment models.FileAttachment) (interface{}, error) {
	return c.db.Collection(fileAttachmentName).InsertOne(ctx, attachment)
}
