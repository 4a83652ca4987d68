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

func TestAuditLog_AuditLogsHandler(t *testing.T) {
	auditDB := &mocks.AuditLogDatabase{}
	auditDB.On("FindPaginated", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		return filter.(bson.M)["entityType"] == "vehicle"
	}), 50, 1).Return([]models.AuditLogEntry{
		{ID: primitive.NewObjectID(), Action: "create", EntityType: "vehicle"},
	}, nil)

	a := handlers.AuditLog{DB: auditDB}

	req, _ := http.NewRequest("GET", "/api/v1/audit-logs?entity_type=vehicle&page=1", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AuditLogsHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"entityType":"vehicle"`)
}

func TestAuditLog_AuditLogsHandlerEmptyResult(t *testing.T) {
	auditDB := &mocks.AuditLogDatabase{}
	auditDB.On("FindPaginated", mock.Anything, mock.Anything, 50, 1).
		Return(nil, nil)

	a := handlers.AuditLog{DB: auditDB}

	req, _ := http.NewRequest("GET", "/api/v1/audit-logs?page=1", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AuditLogsHandler).ServeHTTP(rr, requestAs(req, adminUser(), nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}
