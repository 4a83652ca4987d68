package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flotahub/fleet-api/api"
	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// DriverDocument exported for testing purposes
type DriverDocument struct {
	DB     databases.DriverDocumentDatabase
	UserDB databases.UserDatabase
	Audit  Auditor
}

// DocumentRequest is the upsert payload for a driver document
type DocumentRequest struct {
	ExpiresAt *string `json:"expiresAt"`
	IsActive  *bool   `json:"isActive"`
}

// DocumentsByUserIDHandler returns all documents for the given user
func (d DriverDocument) DocumentsByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	d.writeDocuments(w, r, uID)
}

// MyDocumentsHandler returns the authenticated driver's documents
func (d DriverDocument) MyDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("failed to resolve authenticated user", http.StatusUnauthorized, w, errNoAuthUser)
		return
	}
	uID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	d.writeDocuments(w, r, uID)
}

func (d DriverDocument) writeDocuments(w http.ResponseWriter, r *http.Request, uID primitive.ObjectID) {
	dbResp, err := d.DB.Find(r.Context(), bson.M{"userId": uID})
	if err != nil {
		config.ErrorStatus("failed to get driver documents", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.DriverDocument{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpsertDocumentHandler creates or updates the single (userId, type) document
// row. Expiry documents carry a date (possibly null), authorization documents
// only a flag; only the provided fields are written.
func (d DriverDocument) UpsertDocumentHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	documentType := mux.Vars(r)["document_type"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidDriverDocumentType(documentType) {
		writeValidationErrors(w, map[string]string{"type": "unknown document type"})
		return
	}

	if _, err := d.UserDB.FindOne(r.Context(), bson.M{"_id": uID}); err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	if isExpiryDocument(documentType) {
		// the expiry date may be null for a document that exists but has
		// no recorded date yet
		if req.ExpiresAt != nil {
			if _, err := models.ParseDate(*req.ExpiresAt); err != nil {
				writeValidationErrors(w, map[string]string{"expiresAt": dateErrorMessage(err)})
				return
			}
			set["expiresAt"] = *req.ExpiresAt
		} else {
			set["expiresAt"] = nil
		}
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	if err := d.DB.Upsert(r.Context(), uID, documentType, set); err != nil {
		config.ErrorStatus("failed to upsert driver document", http.StatusInternalServerError, w, err)
		return
	}

	d.Audit.Log(auditUserID(r), "update", "driver_document", uID.Hex()+"/"+documentType, bson.M{
		"userId": uID.Hex(),
		"type":   documentType,
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Document saved successfully",
	})
}

// ToggleDocumentHandler flips only the document's active flag; the expiry
// date and everything else stay untouched
func (d DriverDocument) ToggleDocumentHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	documentType := mux.Vars(r)["document_type"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidDriverDocumentType(documentType) {
		writeValidationErrors(w, map[string]string{"type": "unknown document type"})
		return
	}

	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := d.DB.Upsert(r.Context(), uID, documentType, bson.M{"isActive": req.IsActive}); err != nil {
		config.ErrorStatus("failed to toggle driver document", http.StatusInternalServerError, w, err)
		return
	}

	d.Audit.Log(auditUserID(r), "toggle", "driver_document", uID.Hex()+"/"+documentType, bson.M{
		"userId":   uID.Hex(),
		"type":     documentType,
		"isActive": req.IsActive,
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Document toggled successfully",
	})
}

func isExpiryDocument(documentType string) bool {
	for _, t := range models.ExpiryDocumentTypes {
		if documentType == t {
			return true
		}
	}
	return false
}
