package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flotahub/fleet-api/api/handlers"
	"github.com/flotahub/fleet-api/databases/mocks"
	"github.com/flotahub/fleet-api/models"
)

func TestUpload_AttachmentsHandler(t *testing.T) {
	opID := primitive.NewObjectID()

	attachmentDB := &mocks.FileAttachmentDatabase{}
	attachmentDB.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		return filter.(bson.M)["deadlineOperationId"] == opID
	})).Return([]models.FileAttachment{
		{ID: primitive.NewObjectID(), URL: "https://res.cloudinary.com/fleet/inspection.pdf", FileName: "inspection.pdf"},
	}, nil)

	u := handlers.Upload{DB: attachmentDB}

	req, _ := http.NewRequest("GET", "/api/v1/attachments?deadlineOperationId="+opID.Hex(), nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.AttachmentsHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "inspection.pdf")
}

func TestUpload_AttachmentsHandlerRequiresExactlyOneTarget(t *testing.T) {
	u := handlers.Upload{DB: &mocks.FileAttachmentDatabase{}}

	req, _ := http.NewRequest("GET", "/api/v1/attachments", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.AttachmentsHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	both := "/api/v1/attachments?deadlineOperationId=" + primitive.NewObjectID().Hex() +
		"&driverDocumentId=" + primitive.NewObjectID().Hex()
	req, _ = http.NewRequest("GET", both, nil)
	rr = httptest.NewRecorder()
	http.HandlerFunc(u.AttachmentsHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestUpload_UploadHandlerRequiresAuthUser(t *testing.T) {
	u := handlers.Upload{DB: &mocks.FileAttachmentDatabase{}}

	req, _ := http.NewRequest("POST", "/api/v1/upload", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UploadHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
