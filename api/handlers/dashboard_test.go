package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flotahub/fleet-api/api/handlers"
	"github.com/flotahub/fleet-api/databases/mocks"
	"github.com/flotahub/fleet-api/models"
)

func TestDashboard_AdminDashboardHandler(t *testing.T) {
	vID := primitive.NewObjectID()
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(models.DateLayout)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("CountDocuments", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		return filter.(bson.M)["type"] == models.VehicleTypeTruck
	})).Return(int64(12), nil)
	vehicleDB.On("CountDocuments", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		return filter.(bson.M)["type"] == models.VehicleTypeTrailer
	})).Return(int64(7), nil)
	vehicleDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.Vehicle{
			{ID: vID, Type: models.VehicleTypeTruck, RegistrationNumber: "WX 12345", IsActive: true},
		}, nil)

	userDB := &mocks.UserDatabase{}
	userDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(9), nil)

	deadlineDB := &mocks.CurrentDeadlineDatabase{}
	deadlineDB.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.CurrentDeadline{
			{ID: primitive.NewObjectID(), VehicleID: vID, Type: models.DeadlineInsurance, ExpiresAt: tomorrow},
		}, nil)

	d := handlers.Dashboard{VehicleDB: vehicleDB, UserDB: userDB, DeadlineDB: deadlineDB}

	req, _ := http.NewRequest("GET", "/api/v1/dashboard/admin", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.AdminDashboardHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var dashboard models.AdminDashboard
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dashboard))
	assert.Equal(t, int64(12), dashboard.TruckCount)
	assert.Equal(t, int64(7), dashboard.TrailerCount)
	assert.Equal(t, int64(9), dashboard.DriverCount)
	assert.Len(t, dashboard.UrgentDeadlines, 1)
	assert.Equal(t, "WX 12345", dashboard.UrgentDeadlines[0].VehicleRegistration)
	assert.Equal(t, models.StatusUrgent, dashboard.UrgentDeadlines[0].Status)
}

func TestDashboard_AdminDashboardHandlerSkipsInactiveVehicles(t *testing.T) {
	vID := primitive.NewObjectID()
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(models.DateLayout)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	// the deadline's vehicle is not in the active set
	vehicleDB.On("Find", mock.Anything, mock.Anything).Return([]models.Vehicle{}, nil)

	userDB := &mocks.UserDatabase{}
	userDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)

	deadlineDB := &mocks.CurrentDeadlineDatabase{}
	deadlineDB.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.CurrentDeadline{
			{ID: primitive.NewObjectID(), VehicleID: vID, Type: models.DeadlineInspection, ExpiresAt: yesterday},
		}, nil)

	d := handlers.Dashboard{VehicleDB: vehicleDB, UserDB: userDB, DeadlineDB: deadlineDB}

	req, _ := http.NewRequest("GET", "/api/v1/dashboard/admin", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.AdminDashboardHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var dashboard models.AdminDashboard
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dashboard))
	assert.Empty(t, dashboard.UrgentDeadlines)
}

func TestDashboard_DriverDashboardHandler(t *testing.T) {
	uID := primitive.NewObjectID()
	vID := primitive.NewObjectID()
	expiry := time.Now().UTC().AddDate(0, 0, 20).Format(models.DateLayout)

	assignmentDB := &mocks.AssignmentDatabase{}
	assignmentDB.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f := filter.(bson.M)
		return f["userId"] == uID && f["assignedTo"] == nil
	})).Return([]models.VehicleAssignment{
		{ID: primitive.NewObjectID(), VehicleID: vID, UserID: uID, AssignedFrom: "2026-01-01"},
	}, nil)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: vID, Type: models.VehicleTypeTruck, RegistrationNumber: "WX 12345", IsActive: true}, nil)

	deadlineDB := &mocks.CurrentDeadlineDatabase{}
	deadlineDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.CurrentDeadline{
			{ID: primitive.NewObjectID(), VehicleID: vID, Type: models.DeadlineInspection, ExpiresAt: expiry},
		}, nil)

	documentDB := &mocks.DriverDocumentDatabase{}
	documentDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.DriverDocument{
			{ID: primitive.NewObjectID(), UserID: uID, Type: models.DocumentA1, IsActive: true},
		}, nil)

	d := handlers.Dashboard{
		VehicleDB:    vehicleDB,
		DeadlineDB:   deadlineDB,
		AssignmentDB: assignmentDB,
		DocumentDB:   documentDB,
	}

	req, _ := http.NewRequest("GET", "/api/v1/dashboard/driver", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.DriverDashboardHandler).ServeHTTP(rr, requestAs(req, driverUser(uID), nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var dashboard models.DriverDashboard
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dashboard))
	assert.Len(t, dashboard.Vehicles, 1)
	assert.Equal(t, "WX 12345", dashboard.Vehicles[0].RegistrationNumber)
	assert.Len(t, dashboard.Documents, 1)

	panel := dashboard.Vehicles[0].Deadlines
	assert.Len(t, panel, 3)
	assert.Equal(t, models.StatusWarning, panel[0].Status)
}

func TestDashboard_DriverDashboardHandlerNoAuthUser(t *testing.T) {
	d := handlers.Dashboard{}

	req, _ := http.NewRequest("GET", "/api/v1/dashboard/driver", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(d.DriverDashboardHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
