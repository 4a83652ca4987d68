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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/flotahub/fleet-api/api/handlers"
	"github.com/flotahub/fleet-api/databases/mocks"
	"github.com/flotahub/fleet-api/models"
)

func TestVehicle_VehicleHandler(t *testing.T) {
	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Vehicle{
			{ID: primitive.NewObjectID(), Type: models.VehicleTypeTruck, RegistrationNumber: "WX 12345", IsActive: true},
		}, nil)

	v := handlers.Vehicle{DB: vehicleDB}

	req, _ := http.NewRequest("GET", "/api/v1/vehicles", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(v.VehicleHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "WX 12345")
}

func TestVehicle_VehicleHandlerFindError(t *testing.T) {
	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	v := handlers.Vehicle{DB: vehicleDB}

	req, _ := http.NewRequest("GET", "/api/v1/vehicles", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(v.VehicleHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVehicle_VehicleByIDHandlerBadID(t *testing.T) {
	v := handlers.Vehicle{}

	req, _ := http.NewRequest("GET", "/api/v1/vehicle/1234", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(v.VehicleByIDHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"vehicle_id": "1234"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get objectID from Hex")
}

func TestVehicle_VehicleByIDHandler(t *testing.T) {
	vID := primitive.NewObjectID()
	expiry := time.Now().UTC().AddDate(1, 0, 0).Format(models.DateLayout)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: vID, Type: models.VehicleTypeTruck, RegistrationNumber: "WX 12345", IsActive: true}, nil)

	deadlineDB := &mocks.CurrentDeadlineDatabase{}
	deadlineDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.CurrentDeadline{
			{ID: primitive.NewObjectID(), VehicleID: vID, Type: models.DeadlineInspection, ExpiresAt: expiry},
		}, nil)

	operationDB := &mocks.DeadlineOperationDatabase{}
	operationDB.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.DeadlineOperation{}, nil)

	assignmentDB := &mocks.AssignmentDatabase{}
	assignmentDB.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.VehicleAssignment{}, nil)
	assignmentDB.On("FindOpenForVehicle", mock.Anything, vID).
		Return(nil, errors.New("mongo: no documents in result"))

	v := handlers.Vehicle{
		DB:           vehicleDB,
		DeadlineDB:   deadlineDB,
		OperationDB:  operationDB,
		AssignmentDB: assignmentDB,
	}

	req, _ := http.NewRequest("GET", "/api/v1/vehicle/"+vID.Hex(), nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(v.VehicleByIDHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"vehicle_id": vID.Hex()}))

	assert.Equal(t, http.StatusOK, rr.Code)

	var detail models.VehicleDetail
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, "WX 12345", detail.Vehicle.RegistrationNumber)
	assert.Nil(t, detail.CurrentAssignment)

	// trucks require inspection, insurance and tachograph; only inspection
	// was recorded, so the other two come back with set:false
	assert.Len(t, detail.Deadlines, 3)
	assert.True(t, detail.Deadlines[0].Set)
	assert.Equal(t, models.DeadlineInspection, detail.Deadlines[0].Type)
	assert.Equal(t, models.StatusOK, detail.Deadlines[0].Status)
	assert.False(t, detail.Deadlines[1].Set)
	assert.False(t, detail.Deadlines[2].Set)
}

func TestVehicle_CreateVehicleHandlerValidation(t *testing.T) {
	v := handlers.Vehicle{DB: &mocks.VehicleDatabase{}, Audit: quietAudit()}

	body, _ := json.Marshal(handlers.VehicleRequest{Type: "submarine"})
	req, _ := http.NewRequest("POST", "/api/v1/vehicle", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp models.ValidationErrorResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "type")
	assert.Contains(t, resp.Errors, "registrationNumber")
}

func TestVehicle_CreateVehicleHandler(t *testing.T) {
	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(vehicle models.Vehicle) bool {
		// the VIN is stored trimmed and uppercased
		return vehicle.RegistrationNumber == "WX 12345" &&
			vehicle.Vin == "YV2RT40A8MB123456" &&
			vehicle.IsActive
	})).Return(nil, nil)

	v := handlers.Vehicle{DB: vehicleDB, Audit: quietAudit()}

	body, _ := json.Marshal(handlers.VehicleRequest{
		Type:               models.VehicleTypeTruck,
		RegistrationNumber: "WX 12345",
		Vin:                " yv2rt40a8mb123456 ",
		Brand:              "Volvo",
		Model:              "FH16",
	})
	req, _ := http.NewRequest("POST", "/api/v1/vehicle", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	vehicleDB.AssertExpectations(t)
}

func TestVehicle_UpdateVehicleHandlerNormalizesVin(t *testing.T) {
	vID := primitive.NewObjectID()

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: vID, Type: models.VehicleTypeTruck, RegistrationNumber: "WX 12345", IsActive: true}, nil)
	vehicleDB.On("UpdateOne", mock.Anything, mock.Anything, mock.MatchedBy(func(update interface{}) bool {
		set, ok := update.(bson.M)["$set"].(bson.M)
		return ok && set["vin"] == "YV2RT40A8MB123456"
	})).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	v := handlers.Vehicle{DB: vehicleDB, Audit: quietAudit()}

	body, _ := json.Marshal(handlers.VehicleRequest{
		Type:               models.VehicleTypeTruck,
		RegistrationNumber: "WX 12345",
		Vin:                "yv2rt40a8mb123456",
	})
	req, _ := http.NewRequest("PUT", "/api/v1/vehicle/"+vID.Hex(), bytes.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(v.UpdateVehicleHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"vehicle_id": vID.Hex()}))

	assert.Equal(t, http.StatusOK, rr.Code)
	vehicleDB.AssertExpectations(t)
}

func TestVehicle_DeleteVehicleHandlerSoftDeletes(t *testing.T) {
	vID := primitive.NewObjectID()

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: vID, RegistrationNumber: "WX 12345", IsActive: true}, nil)
	vehicleDB.On("UpdateOne", mock.Anything, mock.Anything, mock.MatchedBy(func(update interface{}) bool {
		set, ok := update.(bson.M)["$set"].(bson.M)
		return ok && set["isActive"] == false
	})).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	assignmentDB := &mocks.AssignmentDatabase{}
	assignmentDB.On("CloseOpen", mock.Anything, vID).Return(int64(1), nil)

	v := handlers.Vehicle{DB: vehicleDB, AssignmentDB: assignmentDB, Audit: quietAudit()}

	req, _ := http.NewRequest("DELETE", "/api/v1/vehicle/"+vID.Hex(), nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(v.DeleteVehicleHandler).ServeHTTP(rr,
		requestAs(req, adminUser(), map[string]string{"vehicle_id": vID.Hex()}))

	assert.Equal(t, http.StatusOK, rr.Code)
	vehicleDB.AssertExpectations(t)
	assignmentDB.AssertExpectations(t)
}
