package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// plannedServiceColor marks workshop visits on the calendar; deadlines get
// their status color instead
const plannedServiceColor = "#3b82f6"

// Calendar exported for testing purposes
type Calendar struct {
	VehicleDB  databases.VehicleDatabase
	DeadlineDB databases.CurrentDeadlineDatabase
	PlannedDB  databases.PlannedServiceDatabase
}

// CalendarHandler returns the merged calendar feed: deadlines of active
// vehicles plus planned services, with server-computed colors. Optional
// from/to query params bound the date range (inclusive).
func (c Calendar) CalendarHandler(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	errs := map[string]string{}
	if from != "" {
		if _, err := models.ParseDate(from); err != nil {
			errs["from"] = dateErrorMessage(err)
		}
	}
	if to != "" {
		if _, err := models.ParseDate(to); err != nil {
			errs["to"] = dateErrorMessage(err)
		}
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	vehicles, err := c.VehicleDB.Find(r.Context(), bson.M{"isActive": true})
	if err != nil {
		config.ErrorStatus("failed to get vehicles", http.StatusInternalServerError, w, err)
		return
	}
	vehiclesByID := make(map[primitive.ObjectID]models.Vehicle, len(vehicles))
	for _, vehicle := range vehicles {
		vehiclesByID[vehicle.ID] = vehicle
	}

	deadlines, err := c.DeadlineDB.Find(r.Context(), dateRangeFilter("expiresAt", from, to))
	if err != nil {
		config.ErrorStatus("failed to get deadlines", http.StatusInternalServerError, w, err)
		return
	}
	planned, err := c.PlannedDB.Find(r.Context(), dateRangeFilter("plannedDate", from, to))
	if err != nil {
		config.ErrorStatus("failed to get planned services", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now()
	events := make([]models.CalendarEvent, 0, len(deadlines)+len(planned))

	for _, deadline := range deadlines {
		vehicle, ok := vehiclesByID[deadline.VehicleID]
		if !ok {
			continue
		}
		status, err := models.StatusForDate(deadline.ExpiresAt, now)
		if err != nil {
			zap.S().Warnw("stored deadline has an unparseable date",
				"vehicle_id", deadline.VehicleID.Hex(),
				"type", deadline.Type,
				"expiresAt", deadline.ExpiresAt)
			continue
		}
		events = append(events, models.CalendarEvent{
			ID:        deadline.ID,
			Title:     fmt.Sprintf("%s · %s", deadline.Type, vehicle.RegistrationNumber),
			Date:      deadline.ExpiresAt,
			Color:     models.StatusColor(status),
			VehicleID: vehicle.ID,
			Kind:      models.EventKindDeadline,
			Status:    status,
		})
	}

	for _, service := range planned {
		vehicle, ok := vehiclesByID[service.VehicleID]
		if !ok {
			continue
		}
		events = append(events, models.CalendarEvent{
			ID:        service.ID,
			Title:     fmt.Sprintf("%s · %s", service.Type, vehicle.RegistrationNumber),
			Date:      service.PlannedDate,
			Color:     plannedServiceColor,
			VehicleID: vehicle.ID,
			Kind:      models.EventKindPlannedService,
		})
	}

	b, err := json.Marshal(events)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// dateRangeFilter builds a filter on a YYYY-MM-DD string field; string
// compare is chronological for this layout
func dateRangeFilter(field, from, to string) bson.M {
	bounds := bson.M{}
	if from != "" {
		bounds["$gte"] = from
	}
	if to != "" {
		bounds["$lte"] = to
	}
	if len(bounds) == 0 {
		return bson.M{}
	}
	return bson.M{field: bounds}
}
