package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxAttachmentSize caps uploaded files at 10MB
const MaxAttachmentSize = 10 * 1024 * 1024

// FileAttachment holds the structure for the file_attachments collection in
// mongo. An attachment belongs to either a deadline operation or a driver
// document, never both.
type FileAttachment struct {
	ID                  primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	URL                 string              `json:"url" bson:"url"`
	FileName            string              `json:"fileName" bson:"fileName"`
	FileSize            int64               `json:"fileSize" bson:"fileSize"`
	MimeType            string              `json:"mimeType" bson:"mimeType"`
	DeadlineOperationID *primitive.ObjectID `json:"deadlineOperationId" bson:"deadlineOperationId,omitempty"`
	DriverDocumentID    *primitive.ObjectID `json:"driverDocumentId" bson:"driverDocumentId,omitempty"`
	UploadedByID        primitive.ObjectID  `json:"uploadedById" bson:"uploadedById"`
	CreatedAt           time.Time           `json:"createdAt" bson:"createdAt"`
}
