package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/flotahub/fleet-api/api"
	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// urgentWindowDays is how far ahead the dashboard alert panel looks
const urgentWindowDays = 7

// Dashboard exported for testing purposes
type Dashboard struct {
	VehicleDB    databases.VehicleDatabase
	UserDB       databases.UserDatabase
	DeadlineDB   databases.CurrentDeadlineDatabase
	AssignmentDB databases.AssignmentDatabase
	DocumentDB   databases.DriverDocumentDatabase
}

// AdminDashboardHandler returns the admin landing page summary: fleet
// counts plus every deadline due within a week or already expired
func (d Dashboard) AdminDashboardHandler(w http.ResponseWriter, r *http.Request) {
	truckCount, err := d.VehicleDB.CountDocuments(r.Context(), bson.M{"type": models.VehicleTypeTruck, "isActive": true})
	if err != nil {
		config.ErrorStatus("failed to count trucks", http.StatusInternalServerError, w, err)
		return
	}
	trailerCount, err := d.VehicleDB.CountDocuments(r.Context(), bson.M{"type": models.VehicleTypeTrailer, "isActive": true})
	if err != nil {
		config.ErrorStatus("failed to count trailers", http.StatusInternalServerError, w, err)
		return
	}
	driverCount, err := d.UserDB.CountDocuments(r.Context(), bson.M{"role": models.RoleDriver, "isActive": true})
	if err != nil {
		config.ErrorStatus("failed to count drivers", http.StatusInternalServerError, w, err)
		return
	}

	urgent, err := d.urgentDeadlines(r, time.Now())
	if err != nil {
		config.ErrorStatus("failed to get urgent deadlines", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.AdminDashboard{
		TruckCount:      truckCount,
		TrailerCount:    trailerCount,
		DriverCount:     driverCount,
		UrgentDeadlines: urgent,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DriverDashboardHandler returns the caller's assigned vehicles with their
// deadline panels, plus the caller's documents
func (d Dashboard) DriverDashboardHandler(w http.ResponseWriter, r *http.Request) {
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

	assignments, err := d.AssignmentDB.Find(r.Context(), bson.M{"userId": uID, "assignedTo": nil})
	if err != nil {
		config.ErrorStatus("failed to get assignments", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now()
	vehicles := make([]models.DriverVehicle, 0, len(assignments))
	for _, assignment := range assignments {
		vehicle, err := d.VehicleDB.FindOne(r.Context(), bson.M{"_id": assignment.VehicleID})
		if err != nil {
			zap.S().Warnw("assignment points at a missing vehicle",
				"assignment_id", assignment.ID.Hex(),
				"vehicle_id", assignment.VehicleID.Hex())
			continue
		}
		deadlines, err := d.DeadlineDB.Find(r.Context(), bson.M{"vehicleId": vehicle.ID})
		if err != nil {
			config.ErrorStatus("failed to get vehicle deadlines", http.StatusInternalServerError, w, err)
			return
		}
		vehicles = append(vehicles, models.DriverVehicle{
			AssignmentID:       assignment.ID,
			VehicleID:          vehicle.ID,
			RegistrationNumber: vehicle.RegistrationNumber,
			Brand:              vehicle.Brand,
			Model:              vehicle.Model,
			Type:               vehicle.Type,
			Deadlines:          buildDeadlinePanel(deadlines, vehicle.Type, now),
		})
	}

	documents, err := d.DocumentDB.Find(r.Context(), bson.M{"userId": uID})
	if err != nil {
		config.ErrorStatus("failed to get driver documents", http.StatusInternalServerError, w, err)
		return
	}
	if len(documents) == 0 {
		documents = []models.DriverDocument{}
	}

	b, err := json.Marshal(models.DriverDashboard{
		Vehicles:  vehicles,
		Documents: documents,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// urgentDeadlines returns active vehicles' deadlines expiring within the
// urgent window (or already expired), ascending by expiry. Calendar dates
// are YYYY-MM-DD strings, so lexicographic compare is chronological.
func (d Dashboard) urgentDeadlines(r *http.Request, now time.Time) ([]models.UrgentDeadline, error) {
	cutoff := now.UTC().AddDate(0, 0, urgentWindowDays).Format(models.DateLayout)

	deadlines, err := d.DeadlineDB.Find(r.Context(),
		bson.M{"expiresAt": bson.M{"$lte": cutoff}},
		options.Find().SetSort(bson.M{"expiresAt": 1}))
	if err != nil {
		return nil, err
	}
	if len(deadlines) == 0 {
		return []models.UrgentDeadline{}, nil
	}

	vehicleIDs := make([]primitive.ObjectID, 0, len(deadlines))
	for _, deadline := range deadlines {
		vehicleIDs = append(vehicleIDs, deadline.VehicleID)
	}
	vehicles, err := d.VehicleDB.Find(r.Context(), bson.M{
		"_id":      bson.M{"$in": vehicleIDs},
		"isActive": true,
	})
	if err != nil {
		return nil, err
	}
	vehiclesByID := make(map[primitive.ObjectID]models.Vehicle, len(vehicles))
	for _, vehicle := range vehicles {
		vehiclesByID[vehicle.ID] = vehicle
	}

	urgent := make([]models.UrgentDeadline, 0, len(deadlines))
	for _, deadline := range deadlines {
		vehicle, ok := vehiclesByID[deadline.VehicleID]
		if !ok {
			// inactive or deleted vehicle, not alertable
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
		urgent = append(urgent, models.UrgentDeadline{
			DeadlineID:          deadline.ID,
			VehicleID:           vehicle.ID,
			VehicleRegistration: vehicle.RegistrationNumber,
			VehicleType:         vehicle.Type,
			Type:                deadline.Type,
			ExpiresAt:           deadline.ExpiresAt,
			Status:              status,
		})
	}
	return urgent, nil
}
