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

// PlannedService exported for testing purposes
type PlannedService struct {
	DB        databases.PlannedServiceDatabase
	VehicleDB databases.VehicleDatabase
	Audit     Auditor
}

// PlannedServiceRequest is the create/update payload for a future workshop visit
type PlannedServiceRequest struct {
	Type        string `json:"type"`
	PlannedDate string `json:"plannedDate"`
	Notes       string `json:"notes"`
}

func (req PlannedServiceRequest) validate() map[string]string {
	errs := map[string]string{}
	if !models.ValidServiceType(req.Type) {
		errs["type"] = "unknown service type"
	}
	if _, err := models.ParseDate(req.PlannedDate); err != nil {
		errs["plannedDate"] = dateErrorMessage(err)
	}
	return errs
}

// PlannedServicesByVehicleIDHandler returns the vehicle's upcoming workshop
// visits, soonest first
func (p PlannedService) PlannedServicesByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := p.DB.Find(r.Context(), bson.M{"vehicleId": vID}, options.Find().SetSort(bson.M{"plannedDate": 1}))
	if err != nil {
		config.ErrorStatus("failed to get planned services", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.PlannedVehicleService{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreatePlannedServiceHandler schedules a future workshop visit for a vehicle
func (p PlannedService) CreatePlannedServiceHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := p.VehicleDB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	var req PlannedServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	planned := models.PlannedVehicleService{
		ID:          primitive.NewObjectID(),
		VehicleID:   vehicle.ID,
		Type:        req.Type,
		PlannedDate: req.PlannedDate,
		Notes:       req.Notes,
		CreatedByID: auditUserID(r),
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := p.DB.InsertOne(r.Context(), planned); err != nil {
		config.ErrorStatus("failed to create planned service", http.StatusInternalServerError, w, err)
		return
	}

	p.Audit.Log(auditUserID(r), "create", "planned_service", planned.ID.Hex(), bson.M{
		"vehicleId":   vehicle.ID.Hex(),
		"type":        planned.Type,
		"plannedDate": planned.PlannedDate,
	})

	b, err := json.Marshal(planned)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdatePlannedServiceHandler reschedules or edits a planned workshop visit
func (p PlannedService) UpdatePlannedServiceHandler(w http.ResponseWriter, r *http.Request) {
	plannedID := mux.Vars(r)["planned_service_id"]

	pID, err := primitive.ObjectIDFromHex(plannedID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	previous, err := p.DB.FindOne(r.Context(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get planned service by ID", http.StatusNotFound, w, err)
		return
	}

	var req PlannedServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	set := bson.M{
		"type":        req.Type,
		"plannedDate": req.PlannedDate,
		"notes":       req.Notes,
	}

	_, err = p.DB.UpdateOne(r.Context(), bson.M{"_id": pID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update planned service", http.StatusInternalServerError, w, err)
		return
	}

	diff := changedFields(bson.M{
		"type":        previous.Type,
		"plannedDate": previous.PlannedDate,
		"notes":       previous.Notes,
	}, bson.M{
		"type":        req.Type,
		"plannedDate": req.PlannedDate,
		"notes":       req.Notes,
	})
	if diff != nil {
		p.Audit.Log(auditUserID(r), "update", "planned_service", pID.Hex(), diff)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Planned service updated successfully",
	})
}

// DeletePlannedServiceHandler cancels a planned workshop visit
func (p PlannedService) DeletePlannedServiceHandler(w http.ResponseWriter, r *http.Request) {
	plannedID := mux.Vars(r)["planned_service_id"]

	pID, err := primitive.ObjectIDFromHex(plannedID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	deleted, err := p.DB.DeleteOne(r.Context(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to delete planned service", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("planned service not found", http.StatusNotFound, w, errors.New("planned service not found"))
		return
	}

	p.Audit.Log(auditUserID(r), "delete", "planned_service", pID.Hex(), nil)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Planned service deleted successfully",
	})
}
