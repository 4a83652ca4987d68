package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/flotahub/fleet-api/api"
	"github.com/flotahub/fleet-api/config"
	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
	templates "github.com/flotahub/fleet-api/templates/html"
)

const minPasswordLength = 8

// User exported for testing purposes
type User struct {
	DB     databases.UserDatabase
	Config config.Config
	Audit  Auditor
}

// UserCreateRequest is the payload for creating a user account
type UserCreateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (req UserCreateRequest) validate() map[string]string {
	errs := map[string]string{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		errs["email"] = "a valid email address is required"
	}
	if len(req.Password) < minPasswordLength {
		errs["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if !models.ValidRole(req.Role) {
		errs["role"] = "role must be admin or driver"
	}
	return errs
}

// UserUpdateRequest is the payload for editing a user account
type UserUpdateRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (req UserUpdateRequest) validate() map[string]string {
	errs := map[string]string{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		errs["email"] = "a valid email address is required"
	}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if !models.ValidRole(req.Role) {
		errs["role"] = "role must be admin or driver"
	}
	return errs
}

// UserCreateHandler creates a user account with a bcrypt-hashed password
func (u User) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	errs := req.validate()
	if len(errs) == 0 {
		if existing, err := u.DB.FindOne(r.Context(), bson.M{"email": strings.ToLower(req.Email)}); err == nil && existing != nil {
			errs["email"] = "email is already in use"
		}
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := u.DB.InsertOne(r.Context(), user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	u.Audit.Log(auditUserID(r), "create", "user", user.ID.Hex(), bson.M{
		"email": user.Email,
		"role":  user.Role,
	})

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UsersHandler returns all user accounts, optionally filtered by role
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}

	dbResp, err := u.DB.Find(r.Context(), filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.User{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MeHandler returns the authenticated user's own profile
func (u User) MeHandler(w http.ResponseWriter, r *http.Request) {
	authUser, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("failed to resolve authenticated user", http.StatusUnauthorized, w, errNoAuthUser)
		return
	}
	uID, err := primitive.ObjectIDFromHex(authUser.ID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := u.DB.FindOne(r.Context(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UserByIDHandler returns a single user account by ID
func (u User) UserByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := u.DB.FindOne(r.Context(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateUserByIDHandler updates a user's profile and audits the changed fields
func (u User) UpdateUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	previous, err := u.DB.FindOne(r.Context(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	set := bson.M{
		"email":     strings.ToLower(req.Email),
		"name":      req.Name,
		"role":      req.Role,
		"updatedAt": time.Now().UTC(),
	}

	_, err = u.DB.UpdateOne(r.Context(), bson.M{"_id": uID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update user", http.StatusInternalServerError, w, err)
		return
	}

	diff := changedFields(bson.M{
		"email": previous.Email,
		"name":  previous.Name,
		"role":  previous.Role,
	}, bson.M{
		"email": strings.ToLower(req.Email),
		"name":  req.Name,
		"role":  req.Role,
	})
	if diff != nil {
		u.Audit.Log(auditUserID(r), "update", "user", uID.Hex(), diff)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "User updated successfully",
	})
}

// ToggleUserActiveHandler flips a user's active flag. Deactivated users cannot
// authenticate; existing bearer tokens stop passing the access gates on their
// next request.
func (u User) ToggleUserActiveHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	user, err := u.DB.FindOne(r.Context(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	isActive := !user.IsActive
	_, err = u.DB.UpdateOne(r.Context(), bson.M{"_id": uID}, bson.M{"$set": bson.M{
		"isActive":  isActive,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		config.ErrorStatus("failed to toggle user active flag", http.StatusInternalServerError, w, err)
		return
	}

	u.Audit.Log(auditUserID(r), "toggle_active", "user", uID.Hex(), bson.M{
		"isActive": map[string]interface{}{"previous": user.IsActive, "current": isActive},
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"isActive": isActive,
	})
}

// SendPasswordResetHandler emails the user a time-limited password reset link
func (u User) SendPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	user, err := u.DB.FindOne(r.Context(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		config.ErrorStatus("server misconfigured", http.StatusInternalServerError, w, errNoJWTSecret)
		return
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"typ":   "password_reset",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		config.ErrorStatus("failed to generate reset token", http.StatusInternalServerError, w, err)
		return
	}

	resetLink := buildResetLink(u.Config.BaseUrl, signed)
	if err := sendResetEmail(user.Email, user.Name, resetLink); err != nil {
		config.ErrorStatus("failed to send reset email", http.StatusInternalServerError, w, err)
		return
	}

	u.Audit.Log(auditUserID(r), "send_password_reset", "user", uID.Hex(), nil)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Password reset email sent",
	})
}

// PasswordResetRequest is the payload for completing a password reset
type PasswordResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// CompletePasswordResetHandler verifies a reset token and stores a new
// password hash. The route is public; the token is the proof of identity.
func (u User) CompletePasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if len(req.Password) < minPasswordLength {
		writeValidationErrors(w, map[string]string{
			"password": fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		})
		return
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		config.ErrorStatus("server misconfigured", http.StatusInternalServerError, w, errNoJWTSecret)
		return
	}

	token, err := jwt.Parse(req.Token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		config.ErrorStatus("invalid or expired reset token", http.StatusUnauthorized, w, err)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "password_reset" {
		config.ErrorStatus("invalid reset token", http.StatusUnauthorized, w, errBadResetToken)
		return
	}
	sub, _ := claims["sub"].(string)
	uID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		config.ErrorStatus("invalid reset token", http.StatusUnauthorized, w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	_, err = u.DB.UpdateOne(r.Context(), bson.M{"_id": uID}, bson.M{"$set": bson.M{
		"passwordHash": string(hash),
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		config.ErrorStatus("failed to update password", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Debugf("password reset completed for user %s", uID.Hex())

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Password updated successfully",
	})
}

func buildResetLink(baseURL, token string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = "https://www.flotahub.com"
	}
	return base + "/reset-password?token=" + token
}

func sendResetEmail(toEmail, name, resetLink string) error {
	from := mail.NewEmail("FlotaHub", "no-reply@flotahub.com")
	subject := "Reset your FlotaHub password"
	to := mail.NewEmail(name, toEmail)
	plain := "Reset your password using this link: " + resetLink
	html := templates.RenderPasswordResetEmail(name, resetLink)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	_, err := client.Send(msg)
	return err
}
