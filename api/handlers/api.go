package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flotahub/fleet-api/api"
	"github.com/flotahub/fleet-api/api/scheduler"
	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// errNoAuthUser is returned when a gated route runs without an
// authenticated user in the request context
var errNoAuthUser = errors.New("no authenticated user in request context")

var (
	errNoJWTSecret   = errors.New("JWT_SECRET is not set")
	errBadResetToken = errors.New("token is not a password reset token")
)

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	gate := api.NewAccessGate(
		databases.NewUserDatabase(a.dbHelper),
		databases.NewAssignmentDatabase(a.dbHelper),
	)

	r := mux.NewRouter()

	audit := Auditor{DB: databases.NewAuditLogDatabase(a.dbHelper)}
	u := User{
		DB:     databases.NewUserDatabase(a.dbHelper),
		Config: a.Config,
		Audit:  audit,
	}
	v := Vehicle{
		DB:           databases.NewVehicleDatabase(a.dbHelper),
		DeadlineDB:   databases.NewCurrentDeadlineDatabase(a.dbHelper),
		OperationDB:  databases.NewDeadlineOperationDatabase(a.dbHelper),
		AssignmentDB: databases.NewAssignmentDatabase(a.dbHelper),
		UserDB:       databases.NewUserDatabase(a.dbHelper),
		Audit:        audit,
	}
	op := DeadlineOperation{
		VehicleDB: databases.NewVehicleDatabase(a.dbHelper),
		Recorder:  databases.NewDeadlineRecorder(a.dbHelper),
		DB:        databases.NewDeadlineOperationDatabase(a.dbHelper),
		Audit:     audit,
	}
	assignment := Assignment{
		DB:        databases.NewAssignmentDatabase(a.dbHelper),
		VehicleDB: databases.NewVehicleDatabase(a.dbHelper),
		UserDB:    databases.NewUserDatabase(a.dbHelper),
		Audit:     audit,
	}
	dash := Dashboard{
		VehicleDB:    databases.NewVehicleDatabase(a.dbHelper),
		UserDB:       databases.NewUserDatabase(a.dbHelper),
		DeadlineDB:   databases.NewCurrentDeadlineDatabase(a.dbHelper),
		AssignmentDB: databases.NewAssignmentDatabase(a.dbHelper),
		DocumentDB:   databases.NewDriverDocumentDatabase(a.dbHelper),
	}
	cal := Calendar{
		VehicleDB:  databases.NewVehicleDatabase(a.dbHelper),
		DeadlineDB: databases.NewCurrentDeadlineDatabase(a.dbHelper),
		PlannedDB:  databases.NewPlannedServiceDatabase(a.dbHelper),
	}
	doc := DriverDocument{
		DB:     databases.NewDriverDocumentDatabase(a.dbHelper),
		UserDB: databases.NewUserDatabase(a.dbHelper),
		Audit:  audit,
	}
	note := VehicleNote{
		DB:           databases.NewVehicleNoteDatabase(a.dbHelper),
		AssignmentDB: databases.NewAssignmentDatabase(a.dbHelper),
		Audit:        audit,
	}
	svc := VehicleService{
		DB:        databases.NewVehicleServiceDatabase(a.dbHelper),
		VehicleDB: databases.NewVehicleDatabase(a.dbHelper),
		Audit:     audit,
	}
	planned := PlannedService{
		DB:        databases.NewPlannedServiceDatabase(a.dbHelper),
		VehicleDB: databases.NewVehicleDatabase(a.dbHelper),
		Audit:     audit,
	}
	upload := Upload{DB: databases.NewFileAttachmentDatabase(a.dbHelper)}
	auditLogs := AuditLog{DB: databases.NewAuditLogDatabase(a.dbHelper)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/reset-password", http.HandlerFunc(u.CompletePasswordResetHandler)).Methods("POST")

	apiCreate.Handle("/vehicles", api.Middleware(gate.RequireAdmin(http.HandlerFunc(v.VehicleHandler)))).Methods("GET")
	apiCreate.Handle("/vehicle", api.Middleware(gate.RequireAdmin(http.HandlerFunc(v.CreateVehicleHandler)))).Methods("POST")
	apiCreate.Handle("/vehicle/{vehicle_id}", api.Middleware(gate.RequireVehicleOwnership(http.HandlerFunc(v.VehicleByIDHandler)))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(v.UpdateVehicleHandler)))).Methods("PUT")
	apiCreate.Handle("/vehicle/{vehicle_id}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(v.DeleteVehicleHandler)))).Methods("DELETE")

	apiCreate.Handle("/vehicle/{vehicle_id}/operations", api.Middleware(gate.RequireVehicleOwnership(http.HandlerFunc(op.RecordOperationHandler)))).Methods("POST")
	apiCreate.Handle("/vehicle/{vehicle_id}/operations", api.Middleware(gate.RequireVehicleOwnership(http.HandlerFunc(op.OperationsByVehicleIDHandler)))).Methods("GET")

	apiCreate.Handle("/vehicle/{vehicle_id}/assignments", api.Middleware(gate.RequireAdmin(http.HandlerFunc(assignment.AssignmentsByVehicleIDHandler)))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}/assign", api.Middleware(gate.RequireAdmin(http.HandlerFunc(assignment.AssignVehicleHandler)))).Methods("POST")
	apiCreate.Handle("/vehicle/{vehicle_id}/unassign", api.Middleware(gate.RequireAdmin(http.HandlerFunc(assignment.UnassignVehicleHandler)))).Methods("POST")

	apiCreate.Handle("/vehicle/{vehicle_id}/notes", api.Middleware(gate.RequireVehicleOwnership(http.HandlerFunc(note.NotesByVehicleIDHandler)))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}/notes", api.Middleware(gate.RequireVehicleOwnership(http.HandlerFunc(note.CreateNoteHandler)))).Methods("POST")
	apiCreate.Handle("/note/{note_id}/toggle-done", api.Middleware(http.HandlerFunc(note.ToggleNoteDoneHandler))).Methods("PUT")
	apiCreate.Handle("/note/{note_id}", api.Middleware(http.HandlerFunc(note.DeleteNoteHandler))).Methods("DELETE")

	apiCreate.Handle("/vehicle/{vehicle_id}/services", api.Middleware(gate.RequireVehicleOwnership(http.HandlerFunc(svc.ServicesByVehicleIDHandler)))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}/services", api.Middleware(gate.RequireAdmin(http.HandlerFunc(svc.CreateServiceHandler)))).Methods("POST")
	apiCreate.Handle("/service/{service_id}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(svc.UpdateServiceHandler)))).Methods("PUT")
	apiCreate.Handle("/service/{service_id}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(svc.DeleteServiceHandler)))).Methods("DELETE")

	apiCreate.Handle("/vehicle/{vehicle_id}/planned-services", api.Middleware(gate.RequireVehicleOwnership(http.HandlerFunc(planned.PlannedServicesByVehicleIDHandler)))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}/planned-services", api.Middleware(gate.RequireAdmin(http.HandlerFunc(planned.CreatePlannedServiceHandler)))).Methods("POST")
	apiCreate.Handle("/planned-service/{planned_service_id}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(planned.UpdatePlannedServiceHandler)))).Methods("PUT")
	apiCreate.Handle("/planned-service/{planned_service_id}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(planned.DeletePlannedServiceHandler)))).Methods("DELETE")

	apiCreate.Handle("/me", api.Middleware(http.HandlerFunc(u.MeHandler))).Methods("GET")
	apiCreate.Handle("/user", api.Middleware(gate.RequireAdmin(http.HandlerFunc(u.UserCreateHandler)))).Methods("POST")
	apiCreate.Handle("/users", api.Middleware(gate.RequireAdmin(http.HandlerFunc(u.UsersHandler)))).Methods("GET")
	apiCreate.Handle("/user/{user_id}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(u.UserByIDHandler)))).Methods("GET")
	apiCreate.Handle("/user/{user_id}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(u.UpdateUserByIDHandler)))).Methods("PUT")
	apiCreate.Handle("/user/{user_id}/toggle-active", api.Middleware(gate.RequireAdmin(http.HandlerFunc(u.ToggleUserActiveHandler)))).Methods("PUT")
	apiCreate.Handle("/user/{user_id}/reset-password", api.Middleware(gate.RequireAdmin(http.HandlerFunc(u.SendPasswordResetHandler)))).Methods("POST")

	apiCreate.Handle("/user/{user_id}/documents", api.Middleware(gate.RequireAdmin(http.HandlerFunc(doc.DocumentsByUserIDHandler)))).Methods("GET")
	apiCreate.Handle("/user/{user_id}/documents/{document_type}", api.Middleware(gate.RequireAdmin(http.HandlerFunc(doc.UpsertDocumentHandler)))).Methods("PUT")
	apiCreate.Handle("/user/{user_id}/documents/{document_type}/toggle", api.Middleware(gate.RequireAdmin(http.HandlerFunc(doc.ToggleDocumentHandler)))).Methods("PUT")
	apiCreate.Handle("/driver/documents", api.Middleware(gate.RequireDriver(http.HandlerFunc(doc.MyDocumentsHandler)))).Methods("GET")

	apiCreate.Handle("/dashboard/admin", api.Middleware(gate.RequireAdmin(http.HandlerFunc(dash.AdminDashboardHandler)))).Methods("GET")
	apiCreate.Handle("/dashboard/driver", api.Middleware(gate.RequireDriver(http.HandlerFunc(dash.DriverDashboardHandler)))).Methods("GET")

	apiCreate.Handle("/calendar", api.Middleware(http.HandlerFunc(cal.CalendarHandler))).Methods("GET")

	apiCreate.Handle("/upload", api.Middleware(http.HandlerFunc(upload.UploadHandler))).Methods("POST")
	apiCreate.Handle("/attachments", api.Middleware(http.HandlerFunc(upload.AttachmentsHandler))).Methods("GET")

	apiCreate.Handle("/audit-logs", api.Middleware(gate.RequireAdmin(http.HandlerFunc(auditLogs.AuditLogsHandler)))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("fleet-api has connected to the database")

	// start the daily deadline reminder scheduler
	a.Scheduler = scheduler.NewScheduler(
		databases.NewVehicleDatabase(a.dbHelper),
		databases.NewCurrentDeadlineDatabase(a.dbHelper),
		databases.NewSchedulerLockDatabase(a.dbHelper),
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

func getPage(Page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		zap.S().Warnf("page not set, using default of %v", Page)
	} else {
		var err error
		Page, err = strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			zap.S().Warnf("page could not be parsed, using default of %v", Page)
		}
	}
	return Page
}
