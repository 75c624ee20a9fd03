package handlers

import (
	"encoding/json"
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
	ws "github.com/rezotera/iprep_portal/websocket"
	"gorm.io/gorm"
)

func promoApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	database.Migrate(db)

	activity := services.NewActivityLogger(db, ws.NewHub())
	h := NewPromoHandler(db, activity)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session", &models.Session{
			ID:        uuid.New(),
			FullName:  "Test Admin",
			Role:      models.RoleAdmin,
			ExpiresAt: time.Now().Add(time.Hour),
		})
		return c.Next()
	})
	app.Get("/promo-codes", h.List)
	app.Post("/promo-codes", h.Create)
	app.Delete("/promo-codes/:code", h.Delete)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestCreatePromoCode(t *testing.T) {
	app, db := promoApp(t)

	resp := postJSON(t, app, "/promo-codes", `{"code":"SAVE20","type":"percentage","value":20}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var promo models.PromoCode
	if err := db.First(&promo, "code = ?", "SAVE20").Error; err != nil {
		t.Fatalf("promo not persisted: %v", err)
	}
	if promo.PerUserLimit != models.PerUserSingle {
		t.Fatalf("per_user_limit = %q, want defaulted %q", promo.PerUserLimit, models.PerUserSingle)
	}
}

func TestCreatePromoCodeDuplicateIsCaseInsensitive(t *testing.T) {
	app, db := promoApp(t)

	if resp := postJSON(t, app, "/promo-codes", `{"code":"SAVE20","type":"flat","value":5}`); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first create status = %d", resp.StatusCode)
	}

	resp := postJSON(t, app, "/promo-codes", `{"code":"save20","type":"flat","value":9}`)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", resp.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "Promo code already exists!" {
		t.Fatalf("error = %q", body["error"])
	}

	var count int64
	db.Model(&models.PromoCode{}).Count(&count)
	if count != 1 {
		t.Fatalf("duplicate must not change state, have %d rows", count)
	}
	var kept models.PromoCode
	db.First(&kept)
	if kept.Value != 5 {
		t.Fatalf("original promo mutated: value = %v", kept.Value)
	}
}

func TestCreatePromoCodeValidation(t *testing.T) {
	app, _ := promoApp(t)

	for _, body := range []string{
		`{"type":"flat","value":5}`,
		`{"code":"X","type":"bogus","value":5}`,
		`{"code":"X","type":"flat","value":0}`,
		`{"code":"X","type":"flat","value":5,"per_user_limit":"thrice"}`,
	} {
		if resp := postJSON(t, app, "/promo-codes", body); resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestDeletePromoCodeByAnyCase(t *testing.T) {
	app, db := promoApp(t)
	postJSON(t, app, "/promo-codes", `{"code":"WELCOME","type":"flat","value":10}`)

	req := httptest.NewRequest(http.MethodDelete, "/promo-codes/welcome", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.PromoCode{}).Count(&count)
	if count != 0 {
		t.Fatal("promo should be gone")
	}
}

func TestDeleteMissingPromoCode(t *testing.T) {
	app, _ := promoApp(t)
	req := httptest.NewRequest(http.MethodDelete, "/promo-codes/nope", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
