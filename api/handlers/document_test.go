package handlers_test

import (
	"bytes"
	"encoding/json"
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

func TestDriverDocument_UpsertDocumentHandlerExpiryDocument(t *testing.T) {
	uID := primitive.NewObjectID()

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.User{ID: uID, Role: models.RoleDriver, IsActive: true}, nil)

	documentDB := &mocks.DriverDocumentDatabase{}
	documentDB.On("Upsert", mock.Anything, uID, models.DocumentA1, mock.MatchedBy(func(set bson.M) bool {
		// only the provided fields are written
		_, hasActive := set["isActive"]
		return set["expiresAt"] == "2027-05-01" && !hasActive
	})).Return(nil)

	d := handlers.DriverDocument{DB: documentDB, UserDB: userDB, Audit: quietAudit()}

	expiresAt := "2027-05-01"
	body, _ := json.Marshal(handlers.DocumentRequest{ExpiresAt: &expiresAt})
	req, _ := http.NewRequest("PUT", "/api/v1/user/"+uID.Hex()+"/documents/a1", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.UpsertDocumentHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"user_id": uID.Hex(), "document_type": models.DocumentA1}))

	assert.Equal(t, http.StatusOK, rr.Code)
	documentDB.AssertExpectations(t)
}

func TestDriverDocument_UpsertDocumentHandlerNullExpiry(t *testing.T) {
	uID := primitive.NewObjectID()

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.User{ID: uID, Role: models.RoleDriver, IsActive: true}, nil)

	// an a1 may exist without a recorded expiry date, inactive
	documentDB := &mocks.DriverDocumentDatabase{}
	documentDB.On("Upsert", mock.Anything, uID, models.DocumentA1, mock.MatchedBy(func(set bson.M) bool {
		expiry, hasExpiry := set["expiresAt"]
		return hasExpiry && expiry == nil && set["isActive"] == false
	})).Return(nil)

	d := handlers.DriverDocument{DB: documentDB, UserDB: userDB, Audit: quietAudit()}

	body := []byte(`{"expiresAt": null, "isActive": false}`)
	req, _ := http.NewRequest("PUT", "/api/v1/user/"+uID.Hex()+"/documents/a1", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.UpsertDocumentHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"user_id": uID.Hex(), "document_type": models.DocumentA1}))

	assert.Equal(t, http.StatusOK, rr.Code)
	documentDB.AssertExpectations(t)
}

func TestDriverDocument_UpsertDocumentHandlerBadExpiryDate(t *testing.T) {
	uID := primitive.NewObjectID()

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.User{ID: uID, Role: models.RoleDriver, IsActive: true}, nil)

	documentDB := &mocks.DriverDocumentDatabase{}

	d := handlers.DriverDocument{DB: documentDB, UserDB: userDB, Audit: quietAudit()}

	body := []byte(`{"expiresAt": "05-06-2027"}`)
	req, _ := http.NewRequest("PUT", "/api/v1/user/"+uID.Hex()+"/documents/imi", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.UpsertDocumentHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"user_id": uID.Hex(), "document_type": models.DocumentIMI}))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	documentDB.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDriverDocument_UpsertDocumentHandlerUnknownType(t *testing.T) {
	uID := primitive.NewObjectID()

	d := handlers.DriverDocument{DB: &mocks.DriverDocumentDatabase{}, UserDB: &mocks.UserDatabase{}, Audit: quietAudit()}

	req, _ := http.NewRequest("PUT", "/api/v1/user/"+uID.Hex()+"/documents/passport", bytes.NewReader([]byte("{}")))
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.UpsertDocumentHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"user_id": uID.Hex(), "document_type": "passport"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown document type")
}

func TestDriverDocument_UpsertDocumentHandlerAuthorizationFlag(t *testing.T) {
	uID := primitive.NewObjectID()

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.User{ID: uID, Role: models.RoleDriver, IsActive: true}, nil)

	documentDB := &mocks.DriverDocumentDatabase{}
	documentDB.On("Upsert", mock.Anything, uID, models.DocumentVehicleAuthorization, mock.MatchedBy(func(set bson.M) bool {
		_, hasExpiry := set["expiresAt"]
		return set["isActive"] == true && !hasExpiry
	})).Return(nil)

	d := handlers.DriverDocument{DB: documentDB, UserDB: userDB, Audit: quietAudit()}

	body := []byte(`{"isActive": true}`)
	req, _ := http.NewRequest("PUT", "/api/v1/user/"+uID.Hex()+"/documents/vehicle_authorization", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.UpsertDocumentHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"user_id": uID.Hex(), "document_type": models.DocumentVehicleAuthorization}))

	assert.Equal(t, http.StatusOK, rr.Code)
	documentDB.AssertExpectations(t)
}

func TestDriverDocument_ToggleDocumentHandlerLeavesExpiryAlone(t *testing.T) {
	uID := primitive.NewObjectID()

	documentDB := &mocks.DriverDocumentDatabase{}
	documentDB.On("Upsert", mock.Anything, uID, models.DocumentEKUZ, mock.MatchedBy(func(set bson.M) bool {
		_, hasExpiry := set["expiresAt"]
		return set["isActive"] == false && !hasExpiry
	})).Return(nil)

	d := handlers.DriverDocument{DB: documentDB, Audit: quietAudit()}

	body := []byte(`{"isActive": false}`)
	req, _ := http.NewRequest("PUT", "/api/v1/user/"+uID.Hex()+"/documents/ekuz/toggle", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.ToggleDocumentHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"user_id": uID.Hex(), "document_type": models.DocumentEKUZ}))

	assert.Equal(t, http.StatusOK, rr.Code)
	documentDB.AssertExpectations(t)
}

func TestDriverDocument_MyDocumentsHandler(t *testing.T) {
	uID := primitive.NewObjectID()

	documentDB := &mocks.DriverDocumentDatabase{}
	documentDB.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		return filter.(bson.M)["userId"] == uID
	})).Return([]models.DriverDocument{
		{ID: primitive.NewObjectID(), UserID: uID, Type: models.DocumentA1, IsActive: true},
	}, nil)

	d := handlers.DriverDocument{DB: documentDB}

	req, _ := http.NewRequest("GET", "/api/v1/driver/documents", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.MyDocumentsHandler).ServeHTTP(rr, requestAs(req, driverUser(uID), nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), models.DocumentA1)
}
