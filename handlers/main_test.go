package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
	"github.com/rlumactod/boarding_house/routes"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret"

// setupApp points the global DB handle at a fresh in-memory database and
// mounts the full route surface on a bare fiber app.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("GCASH_SECRET_KEY", "test-webhook-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tenant{}, &models.Payment{}))
	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.TenantRoutes(app)
	routes.PaymentRoutes(app)
	routes.GcashRoutes(app)
	routes.WebhookRoutes(app)
	return app
}

func createUser(t *testing.T, role string, tenantID *uuid.UUID) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username: fmt.Sprintf("%s-%s", role, uuid.New().String()[:8]),
		Password: string(hashed),
		Name:     "Test " + role,
		Role:     role,
		TenantID: tenantID,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"role":     user.Role,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	if user.TenantID != nil {
		claims["tenant_id"] = user.TenantID.String()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func landlordToken(t *testing.T) string {
	return tokenFor(t, createUser(t, models.RoleLandlord, nil))
}

func boarderToken(t *testing.T, tenantID *uuid.UUID) string {
	return tokenFor(t, createUser(t, models.RoleBoarder, tenantID))
}

func createTestTenant(t *testing.T) models.Tenant {
	t.Helper()
	phone := "09171234567"
	tenant := models.Tenant{
		Name:        "Juan Dela Cruz",
		Email:       "juan@example.com",
		Phone:       &phone,
		RoomNumber:  "101",
		MoveInDate:  "2026-01-15",
		MonthlyRate: 5000,
		Status:      "active",
	}
	require.NoError(t, database.DB.Create(&tenant).Error)
	return tenant
}

func createTestPayment(t *testing.T, tenant models.Tenant, mutate func(*models.Payment)) models.Payment {
	t.Helper()
	payment := models.Payment{
		TenantID:   tenant.ID,
		TenantName: tenant.Name,
		Amount:     5000,
		Month:      "September 2026",
		DueDate:    "2026-09-05",
		Status:     models.PaymentStatusPending,
	}
	if mutate != nil {
		mutate(&payment)
	}
	require.NoError(t, database.DB.Create(&payment).Error)
	return payment
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
