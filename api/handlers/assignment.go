package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// Assignment exported for testing purposes
type Assignment struct {
	DB        databases.AssignmentDatabase
	VehicleDB databases.VehicleDatabase
	UserDB    databases.UserDatabase
	Audit     Auditor
}

// AssignRequest is the payload for assigning a driver to a vehicle
type AssignRequest struct {
	UserID       string `json:"userId"`
	AssignedFrom string `json:"assignedFrom"`
	Notes        string `json:"notes"`
}

// AssignVehicleHandler gives a driver the vehicle, closing whatever open
// assignment the vehicle had first so at most one stays open
func (a Assignment) AssignVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := a.VehicleDB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	errs := map[string]string{}
	uID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		errs["userId"] = "invalid user id"
	}
	assignedFrom := req.AssignedFrom
	if assignedFrom == "" {
		assignedFrom = time.Now().UTC().Format(models.DateLayout)
	} else if _, err := models.ParseDate(assignedFrom); err != nil {
		errs["assignedFrom"] = dateErrorMessage(err)
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	driver, err := a.UserDB.FindOne(r.Context(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}
	if driver.Role != models.RoleDriver {
		writeValidationErrors(w, map[string]string{"userId": "user is not a driver"})
		return
	}
	if !driver.IsActive {
		writeValidationErrors(w, map[string]string{"userId": "user is deactivated"})
		return
	}

	assignment, err := a.DB.Assign(r.Context(), models.VehicleAssignment{
		VehicleID:    vehicle.ID,
		UserID:       driver.ID,
		AssignedFrom: assignedFrom,
		Notes:        req.Notes,
	})
	if err != nil {
		config.ErrorStatus("failed to assign vehicle", http.StatusInternalServerError, w, err)
		return
	}

	a.Audit.Log(auditUserID(r), "assign", "vehicle_assignment", assignment.ID.Hex(), bson.M{
		"vehicleId":    vehicle.ID.Hex(),
		"userId":       driver.ID.Hex(),
		"assignedFrom": assignedFrom,
	})

	b, err := json.Marshal(assignment)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UnassignVehicleHandler closes the vehicle's open assignment
func (a Assignment) UnassignVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	closed, err := a.DB.CloseOpen(r.Context(), vID)
	if err != nil {
		config.ErrorStatus("failed to unassign vehicle", http.StatusInternalServerError, w, err)
		return
	}
	if closed == 0 {
		config.ErrorStatus("vehicle has no open assignment", http.StatusNotFound, w, errors.New("no open assignment"))
		return
	}

	a.Audit.Log(auditUserID(r), "unassign", "vehicle_assignment", vID.Hex(), bson.M{
		"vehicleId": vID.Hex(),
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle unassigned successfully",
	})
}

// AssignmentsByVehicleIDHandler returns the vehicle's assignment history,
// newest first
func (a Assignment) AssignmentsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := a.DB.Find(r.Context(), bson.M{"vehicleId": vID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		config.ErrorStatus("failed to get assignments", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.VehicleAssignment{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
