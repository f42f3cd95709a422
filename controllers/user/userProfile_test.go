package userController_test

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
	userRoutes "lms/routers/userRoutes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
		UploadDir: t.TempDir(),
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{FirstName: "Akosua", LastName: "Frimpong", Email: email, Password: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp, decoded
}

func TestGetAndUpdateOwnProfile(t *testing.T) {
	app, db := setupUserTestApp(t)
	user, token := seedUser(t, db, "akosua@test.io", models.RoleUser)

	resp, decoded := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/profile", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get profile: expected 200 got %d", resp.StatusCode)
	}
	profile := decoded["user"].(map[string]any)
	if profile["email"] != user.Email {
		t.Fatalf("wrong profile returned: %v", profile)
	}
	if _, leaked := profile["password"]; leaked {
		t.Fatal("password leaked in profile response")
	}

	body := `{"firstName":"Akosua","lastName":"Frimpong","email":"akosua@test.io","location":"Kumasi","phoneNumber":"0201111111"}`
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/dashboard/profile", token, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update profile: expected 200 got %d", resp.StatusCode)
	}

	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.Location != "Kumasi" || fresh.PhoneNumber != "0201111111" {
		t.Fatalf("profile not persisted: %+v", fresh)
	}

	// Required fields enforced
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/dashboard/profile", token, `{"firstName":"Akosua"}`)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("invalid update: expected 422 got %d", resp.StatusCode)
	}
}

func TestAdminUserManagement(t *testing.T) {
	app, db := setupUserTestApp(t)
	user, userToken := seedUser(t, db, "akosua@test.io", models.RoleUser)
	_, adminToken := seedUser(t, db, "admin@test.io", models.RoleAdmin)

	// User listing is admin only and excludes admin accounts
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/users", userToken, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("list users as user: expected 403 got %d", resp.StatusCode)
	}

	resp, decoded := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/users", adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list users: expected 200 got %d", resp.StatusCode)
	}
	if users := decoded["users"].([]any); len(users) != 1 {
		t.Fatalf("expected 1 non-admin user, got %d", len(users))
	}

	resp, decoded = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/dashboard/users/%d", user.ID), adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get by id: expected 200 got %d", resp.StatusCode)
	}
	if fetched := decoded["user"].(map[string]any); fetched["email"] != user.Email {
		t.Fatalf("wrong user fetched: %v", fetched)
	}

	body := `{"firstName":"Akos","lastName":"Frimpong","email":"akosua@test.io"}`
	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/dashboard/users/%d", user.ID), adminToken, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin update: expected 200 got %d", resp.StatusCode)
	}

	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.FirstName != "Akos" {
		t.Fatalf("admin update not persisted: %+v", fresh)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/dashboard/users/%d", user.ID), adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin delete: expected 200 got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatal("user row survived delete")
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/dashboard/users/9999", adminToken, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing user: expected 404 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/dashboard/users", adminToken, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty listing: expected 404 got %d", resp.StatusCode)
	}
}

func TestSignupAfterAccountDeletion(t *testing.T) {
	app, db := setupUserTestApp(t)
	user, _ := seedUser(t, db, "akosua@test.io", models.RoleUser)
	_, adminToken := seedUser(t, db, "admin@test.io", models.RoleAdmin)

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/dashboard/users/%d", user.ID), adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin delete: expected 200 got %d", resp.StatusCode)
	}

	// The freed email can open a fresh account
	body := `{"firstName":"Akosua","lastName":"Frimpong","email":"akosua@test.io","password":"secret1"}`
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("re-signup after delete: expected 201 got %d: %v", resp.StatusCode, decoded)
	}
}
