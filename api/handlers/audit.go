package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/flotahub/fleet-api/api"
	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// Auditor appends audit log entries after successful mutations. Writes are
// fire-and-forget: an audit failure is logged and never fails the request.
type Auditor struct {
	DB databases.AuditLogDatabase
}

// Log appends one audit entry in the background
func (a Auditor) Log(userID primitive.ObjectID, action, entityType, entityID string, details bson.M) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := a.DB.InsertOne(ctx, models.AuditLogEntry{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
			Details:    details,
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil {
			zap.S().Errorw("failed to append audit log",
				"action", action,
				"entityType", entityType,
				"entityId", entityID,
				"error", err)
		}
	}()
}

// changedFields diffs two flat documents and returns {previous, current}
// restricted to the keys whose values differ. Returns nil when nothing
// changed, so untouched updates produce no diff payload.
func changedFields(previous, current bson.M) bson.M {
	prevChanged := bson.M{}
	currChanged := bson.M{}
	for key, currValue := range current {
		prevValue, ok := previous[key]
		if !ok || !reflect.DeepEqual(prevValue, currValue) {
			prevChanged[key] = prevValue
			currChanged[key] = currValue
		}
	}
	if len(currChanged) == 0 {
		return nil
	}
	return bson.M{"previous": prevChanged, "current": currChanged}
}

// auditUserID resolves the authenticated user's object ID for audit entries
func auditUserID(r *http.Request) primitive.ObjectID {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID
	}
	id, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// AuditLog exported for testing purposes
type AuditLog struct {
	DB databases.AuditLogDatabase
}

// AuditLogsHandler returns the audit trail newest-first, paginated
func (a AuditLog) AuditLogsHandler(w http.ResponseWriter, r *http.Request) {
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || Limit <= 0 {
		Limit = 50
	}
	Page := getPage(1, r)
	if Page <= 0 {
		Page = 1
	}

	filter := bson.M{}
	if entityType := r.URL.Query().Get("entity_type"); entityType != "" {
		filter["entityType"] = entityType
	}

	dbResp, err := a.DB.FindPaginated(r.Context(), filter, Limit, Page)
	if err != nil {
		config.ErrorStatus("failed to get audit logs", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.AuditLogEntry{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
