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

// VehicleService exported for testing purposes
type VehicleService struct {
	DB        databases.VehicleServiceDatabase
	VehicleDB databases.VehicleDatabase
	Audit     Auditor
}

// ServiceRequest is the create/update payload for a completed workshop visit
type ServiceRequest struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	PerformedAt string   `json:"performedAt"`
	Cost        *float64 `json:"cost"`
	Mileage     *int     `json:"mileage"`
	Workshop    string   `json:"workshop"`
	Notes       string   `json:"notes"`
}

func (req ServiceRequest) validate() map[string]string {
	errs := map[string]string{}
	if !models.ValidServiceType(req.Type) {
		errs["type"] = "unknown service type"
	}
	if req.Description == "" {
		errs["description"] = "description is required"
	}
	if _, err := models.ParseDate(req.PerformedAt); err != nil {
		errs["performedAt"] = dateErrorMessage(err)
	}
	if req.Cost != nil && *req.Cost < 0 {
		errs["cost"] = "cost must not be negative"
	}
	if req.Mileage != nil && *req.Mileage < 0 {
		errs["mileage"] = "mileage must not be negative"
	}
	return errs
}

// ServicesByVehicleIDHandler returns the vehicle's workshop history, newest
// visit first
func (s VehicleService) ServicesByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	filter := bson.M{"vehicleId": vID}
	if serviceType := r.URL.Query().Get("type"); serviceType != "" {
		filter["type"] = serviceType
	}

	dbResp, err := s.DB.Find(r.Context(), filter, options.Find().SetSort(bson.M{"performedAt": -1}))
	if err != nil {
		config.ErrorStatus("failed to get vehicle services", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.VehicleService{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateServiceHandler records a completed workshop visit for a vehicle
func (s VehicleService) CreateServiceHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := s.VehicleDB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	service := models.VehicleService{
		ID:          primitive.NewObjectID(),
		VehicleID:   vehicle.ID,
		Type:        req.Type,
		Description: req.Description,
		PerformedAt: req.PerformedAt,
		Cost:        req.Cost,
		Mileage:     req.Mileage,
		Workshop:    req.Workshop,
		Notes:       req.Notes,
		CreatedByID: auditUserID(r),
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.DB.InsertOne(r.Context(), service); err != nil {
		config.ErrorStatus("failed to create vehicle service", http.StatusInternalServerError, w, err)
		return
	}

	s.Audit.Log(auditUserID(r), "create", "vehicle_service", service.ID.Hex(), bson.M{
		"vehicleId":   vehicle.ID.Hex(),
		"type":        service.Type,
		"performedAt": service.PerformedAt,
	})

	b, err := json.Marshal(service)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateServiceHandler updates a workshop visit and audits the changed fields
func (s VehicleService) UpdateServiceHandler(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["service_id"]

	sID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	previous, err := s.DB.FindOne(r.Context(), bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle service by ID", http.StatusNotFound, w, err)
		return
	}

	var req ServiceRequest
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
		"description": req.Description,
		"performedAt": req.PerformedAt,
		"cost":        req.Cost,
		"mileage":     req.Mileage,
		"workshop":    req.Workshop,
		"notes":       req.Notes,
	}

	_, err = s.DB.UpdateOne(r.Context(), bson.M{"_id": sID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update vehicle service", http.StatusInternalServerError, w, err)
		return
	}

	diff := changedFields(bson.M{
		"type":        previous.Type,
		"description": previous.Description,
		"performedAt": previous.PerformedAt,
		"cost":        previous.Cost,
		"mileage":     previous.Mileage,
		"workshop":    previous.Workshop,
		"notes":       previous.Notes,
	}, bson.M{
		"type":        req.Type,
		"description": req.Description,
		"performedAt": req.PerformedAt,
		"cost":        req.Cost,
		"mileage":     req.Mileage,
		"workshop":    req.Workshop,
		"notes":       req.Notes,
	})
	if diff != nil {
		s.Audit.Log(auditUserID(r), "update", "vehicle_service", sID.Hex(), diff)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle service updated successfully",
	})
}

// DeleteServiceHandler removes a workshop visit record
func (s VehicleService) DeleteServiceHandler(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["service_id"]

	sID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	deleted, err := s.DB.DeleteOne(r.Context(), bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to delete vehicle service", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("vehicle service not found", http.StatusNotFound, w, errors.New("vehicle service not found"))
		return
	}

	s.Audit.Log(auditUserID(r), "delete", "vehicle_service", sID.Hex(), nil)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle service deleted successfully",
	})
}
