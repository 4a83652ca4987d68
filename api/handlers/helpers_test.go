package handlers_test

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flotahub/fleet-api/api"
	"github.com/flotahub/fleet-api/api/handlers"
	"github.com/flotahub/fleet-api/databases/mocks"
	"github.com/flotahub/fleet-api/models"
)

// requestAs injects an authenticated user and route vars into the request,
// the way the auth middleware and mux router would
func requestAs(r *http.Request, user api.AuthUser, vars map[string]string) *http.Request {
	r = r.WithContext(api.ContextWithUser(r.Context(), user))
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func adminUser() api.AuthUser {
	return api.AuthUser{
		ID:    primitive.NewObjectID().Hex(),
		Email: "admin@flotahub.com",
		Role:  models.RoleAdmin,
	}
}

func driverUser(id primitive.ObjectID) api.AuthUser {
	return api.AuthUser{
		ID:    id.Hex(),
		Email: "driver@flotahub.com",
		Role:  models.RoleDriver,
	}
}

// quietAudit returns an auditor whose writes may or may not land before the
// test finishes; the background insert is accepted either way
func quietAudit() handlers.Auditor {
	db := &mocks.AuditLogDatabase{}
	db.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	return handlers.Auditor{DB: db}
}
