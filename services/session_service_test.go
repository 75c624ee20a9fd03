package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rezotera/iprep_portal/database"
	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/upstream"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	database.Migrate(db)
	return db
}

func TestLoginCreatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected call to %s", r.URL.Path)
		}
		w.Write([]byte(`{"code":200,"status":"success","data":{
			"token":"upstream-token",
			"user":{"id":3,"firstName":"Amina","lastName":"Yusuf","email":"amina@example.com","role":"superadmin","isActive":true}
		}}`))
	}))
	defer srv.Close()

	svc := NewSessionService(testDB(t), upstream.New(srv.URL), "test-secret")
	sess, signed, err := svc.Login(context.Background(), "amina@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if sess.UpstreamToken != "upstream-token" {
		t.Fatalf("upstream token = %q", sess.UpstreamToken)
	}
	if sess.Role != models.RoleSuperAdmin {
		t.Fatalf("role = %q, want normalized %q", sess.Role, models.RoleSuperAdmin)
	}
	if sess.FullName != "Amina Yusuf" {
		t.Fatalf("full name = %q", sess.FullName)
	}
	if !sess.Alive() {
		t.Fatal("fresh session should be alive")
	}

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	if err != nil || !token.Valid {
		t.Fatalf("portal JWT does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["session_id"] != sess.ID.String() {
		t.Fatalf("session_id claim = %v", claims["session_id"])
	}
	if claims["role"] != models.RoleSuperAdmin {
		t.Fatalf("role claim = %v", claims["role"])
	}

	found, err := svc.Find(sess.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Email != "amina@example.com" {
		t.Fatalf("persisted email = %q", found.Email)
	}
}

func TestLoginRejectsErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"status":"fail","message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	svc := NewSessionService(testDB(t), upstream.New(srv.URL), "s")
	_, _, err := svc.Login(context.Background(), "a@b.c", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("err = %v, want the server's message", err)
	}
}

func TestCurrentTearsDownOnUpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token revoked"}`))
	}))
	defer srv.Close()

	db := testDB(t)
	api := upstream.New(srv.URL)
	svc := NewSessionService(db, api, "s")

	sess := seedSession(t, db, "revoked-token")
	if _, err := svc.Current(context.Background(), sess); !upstream.IsUnauthorized(err) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	if _, err := svc.Find(sess.ID); err == nil {
		t.Fatal("rejected session should have been torn down")
	}
}

func TestClearTokenKillsMatchingSessions(t *testing.T) {
	db := testDB(t)
	api := upstream.New("http://unused")
	svc := NewSessionService(db, api, "s")
	api.OnUnauthorized(svc.ClearToken)

	sess := seedSession(t, db, "shared-token")
	other := seedSession(t, db, "different-token")

	svc.ClearToken("shared-token")

	got, err := svc.Find(sess.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Alive() {
		t.Fatal("session holding the cleared token must be dead")
	}

	kept, err := svc.Find(other.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !kept.Alive() {
		t.Fatal("sessions with other tokens must be untouched")
	}
}

func seedSession(t *testing.T, db *gorm.DB, token string) *models.Session {
	t.Helper()
	sess := models.Session{
		ID:            uuid.New(),
		UserID:        "1",
		FullName:      "Test Admin",
		Email:         "admin@example.com",
		Role:          models.RoleAdmin,
		UpstreamToken: token,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	if err := db.Create(&sess).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return &sess
}
