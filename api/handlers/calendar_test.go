package handlers_test

import (
	"encoding/json"
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

func TestCalendar_CalendarHandlerInvalidRange(t *testing.T) {
	c := handlers.Calendar{}

	req, _ := http.NewRequest("GET", "/api/v1/calendar?from=01-06-2026", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CalendarHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp models.ValidationErrorResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "from")
}

func TestCalendar_CalendarHandler(t *testing.T) {
	vID := primitive.NewObjectID()
	expired := time.Now().UTC().AddDate(0, 0, -3).Format(models.DateLayout)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.Vehicle{
			{ID: vID, Type: models.VehicleTypeTruck, RegistrationNumber: "WX 12345", IsActive: true},
		}, nil)

	deadlineDB := &mocks.CurrentDeadlineDatabase{}
	deadlineDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.CurrentDeadline{
			{ID: primitive.NewObjectID(), VehicleID: vID, Type: models.DeadlineInspection, ExpiresAt: expired},
		}, nil)

	plannedDB := &mocks.PlannedServiceDatabase{}
	plannedDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.PlannedVehicleService{
			{ID: primitive.NewObjectID(), VehicleID: vID, Type: models.ServiceOilChange, PlannedDate: "2026-09-15"},
		}, nil)

	c := handlers.Calendar{VehicleDB: vehicleDB, DeadlineDB: deadlineDB, PlannedDB: plannedDB}

	req, _ := http.NewRequest("GET", "/api/v1/calendar", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CalendarHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var events []models.CalendarEvent
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	assert.Len(t, events, 2)

	assert.Equal(t, models.EventKindDeadline, events[0].Kind)
	assert.Equal(t, "inspection · WX 12345", events[0].Title)
	assert.Equal(t, models.StatusExpired, events[0].Status)
	assert.Equal(t, models.StatusColor(models.StatusExpired), events[0].Color)

	assert.Equal(t, models.EventKindPlannedService, events[1].Kind)
	assert.Equal(t, "oil_change · WX 12345", events[1].Title)
	assert.Equal(t, "#3b82f6", events[1].Color)
	assert.Empty(t, events[1].Status)
}

func TestCalendar_CalendarHandlerSkipsInactiveVehicles(t *testing.T) {
	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("Find", mock.Anything, mock.Anything).Return([]models.Vehicle{}, nil)

	deadlineDB := &mocks.CurrentDeadlineDatabase{}
	deadlineDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.CurrentDeadline{
			{ID: primitive.NewObjectID(), VehicleID: primitive.NewObjectID(), Type: models.DeadlineInsurance, ExpiresAt: "2026-10-01"},
		}, nil)

	plannedDB := &mocks.PlannedServiceDatabase{}
	plannedDB.On("Find", mock.Anything, mock.Anything).Return([]models.PlannedVehicleService{}, nil)

	c := handlers.Calendar{VehicleDB: vehicleDB, DeadlineDB: deadlineDB, PlannedDB: plannedDB}

	req, _ := http.NewRequest("GET", "/api/v1/calendar?from=2026-01-01&to=2026-12-31", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CalendarHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}
