package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// AccessGate guards routes by role and by vehicle ownership. Ownership is
// checked against the database on every request, so revoking an assignment
// takes effect on the driver's next request without touching their session.
type AccessGate struct {
	Users       databases.UserDatabase
	Assignments databases.AssignmentDatabase
}

// NewAccessGate initializes a new access gate with the provided databases
func NewAccessGate(users databases.UserDatabase, assignments databases.AssignmentDatabase) *AccessGate {
	return &AccessGate{Users: users, Assignments: assignments}
}

// RequireAdmin rejects any request whose authenticated user is not an admin
func (g *AccessGate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != models.RoleAdmin {
			forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireDriver rejects any request whose authenticated user is not a driver.
// Admins do not pass; admin routes carry their own gate.
func (g *AccessGate) RequireDriver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != models.RoleDriver {
			forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireVehicleOwnership lets admins through unconditionally and drivers
// through only when they hold the open assignment for the vehicle in the
// route's {vehicle_id}.
func (g *AccessGate) RequireVehicleOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			forbidden(w, r)
			return
		}
		if user.Role == models.RoleAdmin {
			next.ServeHTTP(w, r)
			return
		}

		vehicleID, err := primitive.ObjectIDFromHex(mux.Vars(r)["vehicle_id"])
		if err != nil {
			forbidden(w, r)
			return
		}
		userID, err := primitive.ObjectIDFromHex(user.ID)
		if err != nil {
			forbidden(w, r)
			return
		}

		owns, err := g.Assignments.HasOpenAssignment(r.Context(), vehicleID, userID)
		if err != nil {
			zap.S().Errorw("failed to check vehicle assignment",
				"vehicle_id", vehicleID.Hex(),
				"user_id", user.ID,
				"error", err)
			forbidden(w, r)
			return
		}
		if !owns {
			forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func forbidden(w http.ResponseWriter, r *http.Request) {
	zap.S().Errorw("forbidden",
		"url", r.URL)
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error": "forbidden"}`))
}
