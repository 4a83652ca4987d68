package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

const maxOperationNotesLength = 1000

// DeadlineOperation exported for testing purposes
type DeadlineOperation struct {
	VehicleDB databases.VehicleDatabase
	Recorder  databases.DeadlineRecorder
	DB        databases.DeadlineOperationDatabase
	Audit     Auditor
}

// OperationRequest is the payload for recording a deadline operation
type OperationRequest struct {
	DeadlineType  string `json:"deadlineType"`
	PerformedAt   string `json:"performedAt"`
	NewExpiryDate string `json:"newExpiryDate"`
	Notes         string `json:"notes"`
}

func (req OperationRequest) validate() map[string]string {
	errs := map[string]string{}
	if !models.ValidDeadlineType(req.DeadlineType) {
		errs["deadlineType"] = "unknown deadline type"
	}
	if _, err := models.ParseDate(req.PerformedAt); err != nil {
		errs["performedAt"] = dateErrorMessage(err)
	}
	if _, err := models.ParseDate(req.NewExpiryDate); err != nil {
		errs["newExpiryDate"] = dateErrorMessage(err)
	}
	if len(req.Notes) > maxOperationNotesLength {
		errs["notes"] = "notes must be 1000 characters or fewer"
	}
	return errs
}

func dateErrorMessage(err error) string {
	if errors.Is(err, models.ErrInvalidDateFormat) {
		return models.ErrInvalidDateFormat.Error()
	}
	return err.Error()
}

// RecordOperationHandler appends a deadline operation to the vehicle's
// history and moves its current deadline forward in one transaction. No
// write happens when validation fails.
func (o DeadlineOperation) RecordOperationHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := o.VehicleDB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	var req OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	op, err := o.Recorder.Record(r.Context(), models.DeadlineOperation{
		VehicleID:     vehicle.ID,
		DeadlineType:  req.DeadlineType,
		PerformedByID: auditUserID(r),
		PerformedAt:   req.PerformedAt,
		NewExpiryDate: req.NewExpiryDate,
		Notes:         req.Notes,
	})
	if err != nil {
		config.ErrorStatus("failed to record deadline operation", http.StatusInternalServerError, w, err)
		return
	}

	o.Audit.Log(auditUserID(r), "create", "deadline_operation", op.ID.Hex(), bson.M{
		"vehicleId":     vehicle.ID.Hex(),
		"deadlineType":  op.DeadlineType,
		"performedAt":   op.PerformedAt,
		"newExpiryDate": op.NewExpiryDate,
	})

	b, err := json.Marshal(op)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// OperationsByVehicleIDHandler returns the vehicle's operation history,
// newest first
func (o DeadlineOperation) OperationsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	filter := bson.M{"vehicleId": vID}
	if deadlineType := r.URL.Query().Get("type"); deadlineType != "" {
		filter["deadlineType"] = deadlineType
	}

	dbResp, err := o.DB.Find(r.Context(), filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		config.ErrorStatus("failed to get deadline operations", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.DeadlineOperation{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
