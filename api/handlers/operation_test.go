package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flotahub/fleet-api/api/handlers"
	"github.com/flotahub/fleet-api/databases/mocks"
	"github.com/flotahub/fleet-api/models"
)

func TestDeadlineOperation_RecordOperationHandler(t *testing.T) {
	vID := primitive.NewObjectID()
	admin := adminUser()
	adminID, _ := primitive.ObjectIDFromHex(admin.ID)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: vID, Type: models.VehicleTypeTruck, IsActive: true}, nil)

	recorder := &mocks.DeadlineRecorder{}
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(op models.DeadlineOperation) bool {
		return op.VehicleID == vID &&
			op.DeadlineType == models.DeadlineInspection &&
			op.PerformedByID == adminID &&
			op.NewExpiryDate == "2027-03-01"
	})).Return(models.DeadlineOperation{
		ID:            primitive.NewObjectID(),
		VehicleID:     vID,
		DeadlineType:  models.DeadlineInspection,
		PerformedByID: adminID,
		PerformedAt:   "2026-03-01",
		NewExpiryDate: "2027-03-01",
		CreatedAt:     time.Now().UTC(),
	}, nil)

	o := handlers.DeadlineOperation{VehicleDB: vehicleDB, Recorder: recorder, Audit: quietAudit()}

	body, _ := json.Marshal(handlers.OperationRequest{
		DeadlineType:  models.DeadlineInspection,
		PerformedAt:   "2026-03-01",
		NewExpiryDate: "2027-03-01",
	})
	req, _ := http.NewRequest("POST", "/api/v1/vehicle/"+vID.Hex()+"/operations", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(o.RecordOperationHandler).ServeHTTP(rr,
		requestAs(req, admin, map[string]string{"vehicle_id": vID.Hex()}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "2027-03-01")
	recorder.AssertExpectations(t)
}

func TestDeadlineOperation_RecordOperationHandlerValidation(t *testing.T) {
	vID := primitive.NewObjectID()

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: vID, Type: models.VehicleTypeTruck}, nil)

	recorder := &mocks.DeadlineRecorder{}

	o := handlers.DeadlineOperation{VehicleDB: vehicleDB, Recorder: recorder, Audit: quietAudit()}

	body, _ := json.Marshal(handlers.OperationRequest{
		DeadlineType:  "car_wash",
		PerformedAt:   "01-03-2026",
		NewExpiryDate: "2027-03-01",
	})
	req, _ := http.NewRequest("POST", "/api/v1/vehicle/"+vID.Hex()+"/operations", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(o.RecordOperationHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"vehicle_id": vID.Hex()}))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp models.ValidationErrorResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "deadlineType")
	assert.Contains(t, resp.Errors, "performedAt")

	// validation failures must not touch the database
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestDeadlineOperation_RecordOperationHandlerVehicleNotFound(t *testing.T) {
	vID := primitive.NewObjectID()

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(nil, errors.New("mongo: no documents in result"))

	o := handlers.DeadlineOperation{VehicleDB: vehicleDB, Recorder: &mocks.DeadlineRecorder{}, Audit: quietAudit()}

	req, _ := http.NewRequest("POST", "/api/v1/vehicle/"+vID.Hex()+"/operations", bytes.NewReader([]byte("{}")))
	rr := httptest.NewRecorder()
	http.HandlerFunc(o.RecordOperationHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"vehicle_id": vID.Hex()}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeadlineOperation_OperationsByVehicleIDHandler(t *testing.T) {
	vID := primitive.NewObjectID()

	operationDB := &mocks.DeadlineOperationDatabase{}
	operationDB.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.DeadlineOperation{
			{ID: primitive.NewObjectID(), VehicleID: vID, DeadlineType: models.DeadlineInsurance, NewExpiryDate: "2027-01-15"},
		}, nil)

	o := handlers.DeadlineOperation{DB: operationDB}

	req, _ := http.NewRequest("GET", "/api/v1/vehicle/"+vID.Hex()+"/operations?type=insurance", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(o.OperationsByVehicleIDHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"vehicle_id": vID.Hex()}))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "2027-01-15")
}
