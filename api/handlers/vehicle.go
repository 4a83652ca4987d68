package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// Vehicle exported for testing purposes
type Vehicle struct {
	DB           databases.VehicleDatabase
	DeadlineDB   databases.CurrentDeadlineDatabase
	OperationDB  databases.DeadlineOperationDatabase
	AssignmentDB databases.AssignmentDatabase
	UserDB       databases.UserDatabase
	Audit        Auditor
}

// VehicleRequest is the create/update payload for a vehicle
type VehicleRequest struct {
	Type               string `json:"type"`
	RegistrationNumber string `json:"registrationNumber"`
	Vin                string `json:"vin"`
	Brand              string `json:"brand"`
	Model              string `json:"model"`
	Year               *int   `json:"year"`
	Notes              string `json:"notes"`
}

func (req VehicleRequest) validate() map[string]string {
	errs := map[string]string{}
	if req.RegistrationNumber == "" {
		errs["registrationNumber"] = "registration number is required"
	}
	if !models.ValidVehicleType(req.Type) {
		errs["type"] = "unknown vehicle type"
	}
	return errs
}

// normalizedVin returns the VIN uppercased with surrounding whitespace
// stripped; VINs are compared case-insensitively everywhere
func (req VehicleRequest) normalizedVin() string {
	return strings.ToUpper(strings.TrimSpace(req.Vin))
}

// VehicleHandler returns all active vehicles, optionally filtered by type
func (v Vehicle) VehicleHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{"isActive": true}
	if vehicleType := r.URL.Query().Get("type"); vehicleType != "" {
		filter["type"] = vehicleType
	}

	dbResp, err := v.DB.Find(r.Context(), filter, options.Find().SetSort(bson.M{"registrationNumber": 1}))
	if err != nil {
		config.ErrorStatus("failed to get vehicles", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VehicleByIDHandler returns the vehicle detail page payload: the vehicle,
// its deadline panel, operation history and assignment history
func (v Vehicle) VehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	zap.S().Debugf("vehicle_id: %v", vehicleID)

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	deadlines, err := v.DeadlineDB.Find(r.Context(), bson.M{"vehicleId": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle deadlines", http.StatusInternalServerError, w, err)
		return
	}

	history, err := v.OperationDB.Find(r.Context(), bson.M{"vehicleId": vID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		config.ErrorStatus("failed to get vehicle history", http.StatusInternalServerError, w, err)
		return
	}
	if len(history) == 0 {
		history = []models.DeadlineOperation{}
	}

	assignments, err := v.AssignmentDB.Find(r.Context(), bson.M{"vehicleId": vID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		config.ErrorStatus("failed to get vehicle assignments", http.StatusInternalServerError, w, err)
		return
	}
	if len(assignments) == 0 {
		assignments = []models.VehicleAssignment{}
	}

	detail := models.VehicleDetail{
		Vehicle:           *vehicle,
		Deadlines:         buildDeadlinePanel(deadlines, vehicle.Type, time.Now()),
		History:           history,
		Assignments:       assignments,
		CurrentAssignment: v.currentAssignment(r.Context(), vID),
	}

	b, err := json.Marshal(detail)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateVehicleHandler creates a vehicle
func (v Vehicle) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	now := time.Now().UTC()
	vehicle := models.Vehicle{
		ID:                 primitive.NewObjectID(),
		Type:               req.Type,
		RegistrationNumber: req.RegistrationNumber,
		Vin:                req.normalizedVin(),
		Brand:              req.Brand,
		Model:              req.Model,
		Year:               req.Year,
		Notes:              req.Notes,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := v.DB.InsertOne(r.Context(), vehicle)
	if err != nil {
		config.ErrorStatus("failed to create vehicle", http.StatusInternalServerError, w, err)
		return
	}

	v.Audit.Log(auditUserID(r), "create", "vehicle", vehicle.ID.Hex(), bson.M{
		"registrationNumber": vehicle.RegistrationNumber,
		"type":               vehicle.Type,
	})

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle created successfully",
		"id":      vehicle.ID.Hex(),
	})
}

// UpdateVehicleHandler updates a vehicle's details and audits the changed fields
func (v Vehicle) UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	previous, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	set := bson.M{
		"type":               req.Type,
		"registrationNumber": req.RegistrationNumber,
		"vin":                req.normalizedVin(),
		"brand":              req.Brand,
		"model":              req.Model,
		"year":               req.Year,
		"notes":              req.Notes,
		"updatedAt":          time.Now().UTC(),
	}

	_, err = v.DB.UpdateOne(r.Context(), bson.M{"_id": vID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update vehicle", http.StatusInternalServerError, w, err)
		return
	}

	diff := changedFields(bson.M{
		"type":               previous.Type,
		"registrationNumber": previous.RegistrationNumber,
		"vin":                previous.Vin,
		"brand":              previous.Brand,
		"model":              previous.Model,
		"year":               previous.Year,
		"notes":              previous.Notes,
	}, bson.M{
		"type":               req.Type,
		"registrationNumber": req.RegistrationNumber,
		"vin":                req.normalizedVin(),
		"brand":              req.Brand,
		"model":              req.Model,
		"year":               req.Year,
		"notes":              req.Notes,
	})
	if diff != nil {
		v.Audit.Log(auditUserID(r), "update", "vehicle", vID.Hex(), diff)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle updated successfully",
	})
}

// DeleteVehicleHandler deactivates a vehicle. The row and its history stay in
// place; open assignments are closed so drivers lose access.
func (v Vehicle) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	_, err = v.DB.UpdateOne(r.Context(), bson.M{"_id": vID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}})
	if err != nil {
		config.ErrorStatus("failed to delete vehicle", http.StatusInternalServerError, w, err)
		return
	}

	if _, err := v.AssignmentDB.CloseOpen(r.Context(), vID); err != nil {
		zap.S().Errorw("failed to close assignments for deactivated vehicle",
			"vehicle_id", vID.Hex(),
			"error", err)
	}

	v.Audit.Log(auditUserID(r), "delete", "vehicle", vID.Hex(), bson.M{
		"registrationNumber": vehicle.RegistrationNumber,
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle deleted successfully",
	})
}

// currentAssignment returns the vehicle's open assignment joined with the
// driver's name, or nil when the vehicle is unassigned
func (v Vehicle) currentAssignment(ctx context.Context, vID primitive.ObjectID) *models.AssignmentWithDriver {
	open, err := v.AssignmentDB.FindOpenForVehicle(ctx, vID)
	if err != nil {
		return nil
	}
	withDriver := models.AssignmentWithDriver{VehicleAssignment: *open}
	if driver, err := v.UserDB.FindOne(ctx, bson.M{"_id": open.UserID}); err == nil {
		withDriver.DriverName = driver.Name
	}
	return &withDriver
}

// buildDeadlinePanel merges the vehicle's required deadline types with its
// recorded current deadlines. Required types with no row get an explicit
// set:false entry; recorded extra types are kept so history never disappears.
func buildDeadlinePanel(deadlines []models.CurrentDeadline, vehicleType string, now time.Time) []models.DeadlinePanelEntry {
	byType := make(map[string]models.CurrentDeadline, len(deadlines))
	for _, d := range deadlines {
		byType[d.Type] = d
	}

	required := models.RequiredDeadlineTypes(vehicleType)
	isRequired := make(map[string]bool, len(required))
	panel := make([]models.DeadlinePanelEntry, 0, len(required))

	for _, t := range required {
		isRequired[t] = true
		row, ok := byType[t]
		if !ok {
			panel = append(panel, models.DeadlinePanelEntry{Type: t, Set: false})
			continue
		}
		panel = append(panel, panelEntry(row, now))
	}
	for _, t := range models.AllDeadlineTypes {
		if isRequired[t] {
			continue
		}
		if row, ok := byType[t]; ok {
			panel = append(panel, panelEntry(row, now))
		}
	}
	return panel
}

func panelEntry(row models.CurrentDeadline, now time.Time) models.DeadlinePanelEntry {
	entry := models.DeadlinePanelEntry{
		Type:      row.Type,
		Set:       true,
		ExpiresAt: row.ExpiresAt,
		UpdatedAt: row.UpdatedAt,
	}
	status, err := models.StatusForDate(row.ExpiresAt, now)
	if err != nil {
		zap.S().Warnw("stored deadline has an unparseable date",
			"vehicle_id", row.VehicleID.Hex(),
			"type", row.Type,
			"expiresAt", row.ExpiresAt)
		return entry
	}
	entry.Status = status
	return entry
}

// writeValidationErrors returns per-field validation errors with 422 so the
// UI can attach each message to its form field
func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(models.ValidationErrorResponse{Errors: errs})
}
