package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flotahub/fleet-api/api"
	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// Upload exported for testing purposes
type Upload struct {
	DB databases.FileAttachmentDatabase
}

// UploadHandler accepts a multipart file, stores it in Cloudinary and records
// a file_attachments row linked to a deadline operation or a driver document.
// Exactly one of the deadlineOperationId and driverDocumentId form fields must
// be set.
func (u Upload) UploadHandler(w http.ResponseWriter, r *http.Request) {
	authUser, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("failed to resolve authenticated user", http.StatusUnauthorized, w, errNoAuthUser)
		return
	}
	uploadedBy, err := primitive.ObjectIDFromHex(authUser.ID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, models.MaxAttachmentSize)
	if err := r.ParseMultipartForm(models.MaxAttachmentSize); err != nil {
		config.ErrorStatus("file exceeds the maximum attachment size", http.StatusRequestEntityTooLarge, w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("failed to read uploaded file", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	operationID := r.FormValue("deadlineOperationId")
	documentID := r.FormValue("driverDocumentId")
	if (operationID == "") == (documentID == "") {
		writeValidationErrors(w, map[string]string{
			"target": "exactly one of deadlineOperationId and driverDocumentId is required",
		})
		return
	}

	var opID, docID *primitive.ObjectID
	if operationID != "" {
		id, err := primitive.ObjectIDFromHex(operationID)
		if err != nil {
			writeValidationErrors(w, map[string]string{"deadlineOperationId": "must be a valid object ID"})
			return
		}
		opID = &id
	}
	if documentID != "" {
		id, err := primitive.ObjectIDFromHex(documentID)
		if err != nil {
			writeValidationErrors(w, map[string]string{"driverDocumentId": "must be a valid object ID"})
			return
		}
		docID = &id
	}

	// cloudinary.New reads CLOUDINARY_URL from the environment
	cld, err := cloudinary.New()
	if err != nil {
		config.ErrorStatus("failed to initialize upload client", http.StatusInternalServerError, w, err)
		return
	}
	uploadResp, err := cld.Upload.Upload(r.Context(), file, uploader.UploadParams{
		Folder: "fleet-attachments",
	})
	if err != nil {
		config.ErrorStatus("failed to upload file", http.StatusInternalServerError, w, err)
		return
	}
	if uploadResp.SecureURL == "" {
		config.ErrorStatus("failed to upload file", http.StatusInternalServerError, w, errors.New("upload returned no URL"))
		return
	}

	attachment := models.FileAttachment{
		ID:                  primitive.NewObjectID(),
		URL:                 uploadResp.SecureURL,
		FileName:            header.Filename,
		FileSize:            header.Size,
		MimeType:            header.Header.Get("Content-Type"),
		DeadlineOperationID: opID,
		DriverDocumentID:    docID,
		UploadedByID:        uploadedBy,
		CreatedAt:           time.Now().UTC(),
	}

	if _, err := u.DB.InsertOne(r.Context(), attachment); err != nil {
		config.ErrorStatus("failed to record file attachment", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(attachment)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// AttachmentsHandler lists the attachments linked to a deadline operation or a
// driver document, selected by query parameter
func (u Upload) AttachmentsHandler(w http.ResponseWriter, r *http.Request) {
	operationID := r.URL.Query().Get("deadlineOperationId")
	documentID := r.URL.Query().Get("driverDocumentId")
	if (operationID == "") == (documentID == "") {
		writeValidationErrors(w, map[string]string{
			"target": "exactly one of deadlineOperationId and driverDocumentId is required",
		})
		return
	}

	filter := bson.M{}
	if operationID != "" {
		id, err := primitive.ObjectIDFromHex(operationID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["deadlineOperationId"] = id
	} else {
		id, err := primitive.ObjectIDFromHex(documentID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["driverDocumentId"] = id
	}

	dbResp, err := u.DB.Find(r.Context(), filter)
	if err != nil {
		config.ErrorStatus("failed to get attachments", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.FileAttachment{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
