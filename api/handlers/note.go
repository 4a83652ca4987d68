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

	"github.com/flotahub/fleet-api/api"
	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// VehicleNote exported for testing purposes
type VehicleNote struct {
	DB           databases.VehicleNoteDatabase
	AssignmentDB databases.AssignmentDatabase
	Audit        Auditor
}

// NoteRequest is the create payload for a vehicle note
type NoteRequest struct {
	Content      string  `json:"content"`
	AssignedToID *string `json:"assignedToId"`
	IsAdminOnly  bool    `json:"isAdminOnly"`
}

// NotesByVehicleIDHandler returns the vehicle's notes, newest first.
// Admin-only notes are stripped for drivers.
func (n VehicleNote) NotesByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	filter := bson.M{"vehicleId": vID}
	if user, ok := api.UserFromContext(r.Context()); ok && user.Role == models.RoleDriver {
		filter["isAdminOnly"] = false
	}

	dbResp, err := n.DB.Find(r.Context(), filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		config.ErrorStatus("failed to get vehicle notes", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.VehicleNote{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateNoteHandler adds a note to the vehicle. Drivers cannot create
// admin-only notes.
func (n VehicleNote) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Content == "" {
		writeValidationErrors(w, map[string]string{"content": "content is required"})
		return
	}

	user, _ := api.UserFromContext(r.Context())
	isAdminOnly := req.IsAdminOnly
	if user.Role != models.RoleAdmin {
		isAdminOnly = false
	}

	var assignedTo *primitive.ObjectID
	if req.AssignedToID != nil && *req.AssignedToID != "" {
		aID, err := primitive.ObjectIDFromHex(*req.AssignedToID)
		if err != nil {
			writeValidationErrors(w, map[string]string{"assignedToId": "invalid user id"})
			return
		}
		assignedTo = &aID
	}

	now := time.Now().UTC()
	note := models.VehicleNote{
		ID:           primitive.NewObjectID(),
		VehicleID:    vID,
		Content:      req.Content,
		CreatedByID:  auditUserID(r),
		AssignedToID: assignedTo,
		IsAdminOnly:  isAdminOnly,
		IsDone:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = n.DB.InsertOne(r.Context(), note)
	if err != nil {
		config.ErrorStatus("failed to create note", http.StatusInternalServerError, w, err)
		return
	}

	n.Audit.Log(auditUserID(r), "create", "vehicle_note", note.ID.Hex(), bson.M{
		"vehicleId": vID.Hex(),
	})

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Note created successfully",
		"id":      note.ID.Hex(),
	})
}

// requireNoteAccess checks that the caller may touch the note. Admins always
// may; drivers only for visible notes on a vehicle they hold the open
// assignment for.
func (n VehicleNote) requireNoteAccess(w http.ResponseWriter, r *http.Request, note *models.VehicleNote) bool {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("failed to resolve authenticated user", http.StatusUnauthorized, w, errNoAuthUser)
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	if note.IsAdminOnly {
		config.ErrorStatus("note is not accessible", http.StatusForbidden, w, errors.New("note is admin only"))
		return false
	}

	uID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return false
	}
	owns, err := n.AssignmentDB.HasOpenAssignment(r.Context(), note.VehicleID, uID)
	if err != nil {
		config.ErrorStatus("failed to check vehicle assignment", http.StatusInternalServerError, w, err)
		return false
	}
	if !owns {
		config.ErrorStatus("vehicle is not assigned to the user", http.StatusForbidden, w, errors.New("no open assignment for vehicle"))
		return false
	}
	return true
}

// ToggleNoteDoneHandler flips the note's done flag. Drivers can only touch
// notes on their own vehicle.
func (n VehicleNote) ToggleNoteDoneHandler(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["note_id"]

	nID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	note, err := n.DB.FindOne(r.Context(), bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("failed to get note by ID", http.StatusNotFound, w, err)
		return
	}

	if !n.requireNoteAccess(w, r, note) {
		return
	}

	_, err = n.DB.UpdateOne(r.Context(), bson.M{"_id": nID},
		bson.M{"$set": bson.M{"isDone": !note.IsDone, "updatedAt": time.Now().UTC()}})
	if err != nil {
		config.ErrorStatus("failed to toggle note", http.StatusInternalServerError, w, err)
		return
	}

	n.Audit.Log(auditUserID(r), "toggle", "vehicle_note", nID.Hex(), bson.M{
		"isDone": !note.IsDone,
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Note toggled successfully",
		"isDone":  !note.IsDone,
	})
}

// DeleteNoteHandler removes a note. Drivers can delete notes on their own
// vehicle; admins can delete any note.
func (n VehicleNote) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["note_id"]

	nID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	note, err := n.DB.FindOne(r.Context(), bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("failed to get note by ID", http.StatusNotFound, w, err)
		return
	}

	if !n.requireNoteAccess(w, r, note) {
		return
	}

	deleted, err := n.DB.DeleteOne(r.Context(), bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("failed to delete note", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("note not found", http.StatusNotFound, w, errors.New("note not found"))
		return
	}

	n.Audit.Log(auditUserID(r), "delete", "vehicle_note", nID.Hex(), nil)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Note deleted successfully",
	})
}
