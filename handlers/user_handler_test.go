package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rezotera/iprep_portal/database"
	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/services"
	"github.com/rezotera/iprep_portal/upstream"
	ws "github.com/rezotera/iprep_portal/websocket"
)

const usersFixture = `{"code":200,"status":"success","data":{"users":[
	{"id":1,"firstName":"Sara","lastName":"Khan","email":"sara@example.com","role":"superadmin","isActive":true},
	{"id":2,"firstName":"Omar","lastName":"Said","email":"omar@example.com","role":"admin","isActive":true},
	{"id":3,"firstName":"Lena","lastName":"Park","email":"lena@example.com","role":"user","isActive":false}
]}}`

func userApp(t *testing.T, upstreamHandler http.Handler, sess *models.Session) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(upstreamHandler)
	t.Cleanup(srv.Close)

	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	database.Migrate(db)

	h := NewUserHandler(upstream.New(srv.URL), services.NewActivityLogger(db, ws.NewHub()))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session", sess)
		return c.Next()
	})
	app.Get("/users", h.List)
	app.Post("/users", h.Create)
	app.Put("/users/:userId", h.Update)
	app.Delete("/users/:userId", h.Delete)
	return app
}

func adminSession(userID string) *models.Session {
	return &models.Session{
		ID:            uuid.New(),
		UserID:        userID,
		FullName:      "Omar Said",
		Role:          models.RoleAdmin,
		UpstreamToken: "tok",
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func TestListUsersSearchFilter(t *testing.T) {
	app := userApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, usersFixture)
	}), adminSession("2"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?search=lena", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var body struct {
		Users []models.PortalUser `json:"users"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if len(body.Users) != 1 || body.Users[0].Email != "lena@example.com" {
		t.Fatalf("filtered users = %+v", body.Users)
	}
	if body.Users[0].Role != models.RoleUser {
		t.Fatalf("role not normalized: %q", body.Users[0].Role)
	}
}

func TestCreateUserConflict(t *testing.T) {
	app := userApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"user already exists"}`)
	}), adminSession("2"))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(
		`{"first_name":"New","last_name":"User","email":"sara@example.com","role":"User","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestCreateUserRequiresPassword(t *testing.T) {
	app := userApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid request must not reach upstream")
	}), adminSession("2"))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(
		`{"first_name":"New","last_name":"User","email":"new@example.com","role":"User"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateUserPermissionDenied(t *testing.T) {
	// Admin (level 3) attempts to edit the SuperAdmin (id 1).
	app := userApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprint(w, usersFixture)
			return
		}
		t.Errorf("forbidden edit must not reach upstream: %s %s", r.Method, r.URL.Path)
	}), adminSession("2"))

	req := httptest.NewRequest(http.MethodPut, "/users/1", strings.NewReader(
		`{"first_name":"Sara","last_name":"Khan","email":"sara@example.com","role":"SuperAdmin"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestDeleteSelfRejected(t *testing.T) {
	app := userApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("self delete must not reach upstream")
	}), adminSession("2"))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/users/2", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDeleteUserExpiredSession(t *testing.T) {
	app := userApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"token expired"}`)
	}), adminSession("2"))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/users/3", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "Session expired. Please log in again." {
		t.Fatalf("error = %q", body["error"])
	}
}
