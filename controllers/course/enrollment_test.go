package courseController_test

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseRoutes "lms/routers/courseRoutes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCourseTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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
	courseRoutes.SetupCourseRoutes(app)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{
		FirstName: "Ama",
		LastName:  "Owusu",
		Email:     email,
		Password:  "x",
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return user, token
}

func seedCourse(t *testing.T, db *gorm.DB, title string) models.Course {
	t.Helper()

	course := models.Course{
		Title:       title,
		Description: "desc",
		Instructor:  models.Instructor{Name: "Kweku Mensah", Email: "kweku@pathwayhub.io"},
		Duration:    "6 weeks",
		Date:        time.Now().AddDate(0, 1, 0),
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
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

func TestRegisterForCourseWritesBothSides(t *testing.T) {
	app, db := setupCourseTestApp(t)
	user, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	course := seedCourse(t, db, "Web Development")

	body := `{"courseTitle":"Web Development","messageBody":"excited"}`
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d: %v", resp.StatusCode, decoded)
	}
	if decoded["success"] != true {
		t.Fatalf("expected success envelope, got %v", decoded)
	}

	var count int64
	db.Model(&models.CourseRegistration{}).Where("course_id = ? AND user_id = ?", course.ID, user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 ledger row, got %d", count)
	}

	// Both denormalized sides must agree after success
	var freshUser models.User
	var freshCourse models.Course
	db.First(&freshUser, user.ID)
	db.First(&freshCourse, course.ID)
	if !freshUser.HasCourse(course.ID) {
		t.Fatalf("user.courses missing course %d: %v", course.ID, freshUser.Courses)
	}
	if !freshCourse.HasEnrolledUser(user.ID) {
		t.Fatalf("course.enrolledUsers missing user %d: %v", user.ID, freshCourse.EnrolledUsers)
	}
}

func TestRegisterForCourseDuplicateRejected(t *testing.T) {
	app, db := setupCourseTestApp(t)
	user, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	seedCourse(t, db, "Web Development")

	body := `{"courseTitle":"Web Development","messageBody":"excited"}`
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first register: expected 200 got %d", resp.StatusCode)
	}

	resp, decoded := doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400 got %d", resp.StatusCode)
	}
	if decoded["message"] != "You are already enrolled in this course." {
		t.Fatalf("unexpected message: %v", decoded["message"])
	}

	var count int64
	db.Model(&models.CourseRegistration{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("ledger count changed on duplicate: %d", count)
	}
}

func TestRegisterForCourseByIdAndMissingCourse(t *testing.T) {
	app, db := setupCourseTestApp(t)
	_, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	course := seedCourse(t, db, "Data Engineering")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token,
		fmt.Sprintf(`{"courseId":%d}`, course.ID))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register by id: expected 200 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, `{"courseTitle":"Nope"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing course: expected 404 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty body: expected 400 got %d", resp.StatusCode)
	}
}

func TestUnregisterFromCourse(t *testing.T) {
	app, db := setupCourseTestApp(t)
	user, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	course := seedCourse(t, db, "Web Development")

	// Unregister while not registered leaves data unchanged
	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/dashboard/%d/unregister", course.ID), token, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}

	doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, `{"courseTitle":"Web Development"}`)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/dashboard/%d/unregister", course.ID), token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unregister: expected 200 got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.CourseRegistration{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("ledger row survived unregister: %d", count)
	}

	var freshUser models.User
	var freshCourse models.Course
	db.First(&freshUser, user.ID)
	db.First(&freshCourse, course.ID)
	if freshUser.HasCourse(course.ID) || freshCourse.HasEnrolledUser(user.ID) {
		t.Fatalf("back-references survived unregister: %v / %v", freshUser.Courses, freshCourse.EnrolledUsers)
	}
}

func TestReRegisterAfterUnregister(t *testing.T) {
	app, db := setupCourseTestApp(t)
	user, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	course := seedCourse(t, db, "Web Development")

	body := `{"courseTitle":"Web Development"}`
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first register: expected 200 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/dashboard/%d/unregister", course.ID), token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unregister: expected 200 got %d", resp.StatusCode)
	}

	// The freed (course, user) pair must be registrable again
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-register: expected 200 got %d: %v", resp.StatusCode, decoded)
	}

	var count int64
	db.Model(&models.CourseRegistration{}).Where("course_id = ? AND user_id = ?", course.ID, user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 ledger row after re-register, got %d", count)
	}

	var freshUser models.User
	db.First(&freshUser, user.ID)
	if !freshUser.HasCourse(course.ID) {
		t.Fatalf("user.courses missing course after re-register: %v", freshUser.Courses)
	}
}

func TestRegisterForCourseStorageFailure(t *testing.T) {
	app, db := setupCourseTestApp(t)
	_, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	seedCourse(t, db, "Web Development")

	// A broken ledger store must surface as 500, never as a false verdict
	if err := db.Migrator().DropTable(&models.CourseRegistration{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	resp, decoded := doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, `{"courseTitle":"Web Development"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d: %v", resp.StatusCode, decoded)
	}
	if decoded["message"] != "Internal Server Error" {
		t.Fatalf("unexpected message: %v", decoded["message"])
	}
}

func TestDeleteCourseCascadesReferences(t *testing.T) {
	app, db := setupCourseTestApp(t)
	user, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	_, adminToken := seedUser(t, db, "admin@test.io", models.RoleAdmin)
	course := seedCourse(t, db, "Web Development")

	doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, `{"courseTitle":"Web Development"}`)

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", course.ID), adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete course: expected 200 got %d", resp.StatusCode)
	}

	var freshUser models.User
	db.First(&freshUser, user.ID)
	if freshUser.HasCourse(course.ID) {
		t.Fatalf("dangling course reference on user: %v", freshUser.Courses)
	}

	// The former registrant sees an empty dashboard, no ledger orphan
	resp, decoded := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/registeredCourses", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("registeredCourses: expected 200 got %d", resp.StatusCode)
	}
	courses, ok := decoded["courses"].([]any)
	if !ok || len(courses) != 0 {
		t.Fatalf("expected empty course list, got %v", decoded["courses"])
	}
}

func TestCreateCourseAdminOnlyAndUniqueTitle(t *testing.T) {
	app, db := setupCourseTestApp(t)
	_, userToken := seedUser(t, db, "ama@test.io", models.RoleUser)
	_, adminToken := seedUser(t, db, "admin@test.io", models.RoleAdmin)

	body := `{"title":"Cloud 101","description":"intro","instructorName":"Efua","instructorEmail":"efua@pathwayhub.io","duration":"4 weeks"}`

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/courses", userToken, body)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin create: expected 403 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/courses", adminToken, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin create: expected 201 got %d", resp.StatusCode)
	}

	resp, decoded := doJSON(t, app, http.MethodPost, "/api/v1/courses", adminToken, body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate title: expected 400 got %d: %v", resp.StatusCode, decoded)
	}
}

func TestRecreateCourseAfterDelete(t *testing.T) {
	app, db := setupCourseTestApp(t)
	_, adminToken := seedUser(t, db, "admin@test.io", models.RoleAdmin)
	course := seedCourse(t, db, "Cloud 101")

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", course.ID), adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", resp.StatusCode)
	}

	// The deleted title is free again
	body := `{"title":"Cloud 101","description":"intro","instructorName":"Efua","instructorEmail":"efua@pathwayhub.io","duration":"4 weeks"}`
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/v1/courses", adminToken, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("recreate after delete: expected 201 got %d: %v", resp.StatusCode, decoded)
	}
}

func TestDashboardMetrics(t *testing.T) {
	app, db := setupCourseTestApp(t)
	_, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	_, adminToken := seedUser(t, db, "admin@test.io", models.RoleAdmin)
	seedCourse(t, db, "Web Development")
	seedCourse(t, db, "Data Engineering")

	doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, `{"courseTitle":"Web Development"}`)

	resp, decoded := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/metrics", adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	metrics, ok := decoded["metrics"].(map[string]any)
	if !ok {
		t.Fatalf("missing metrics: %v", decoded)
	}
	// Admin accounts are excluded from the user count
	if metrics["users"].(float64) != 1 {
		t.Fatalf("expected 1 user, got %v", metrics["users"])
	}
	if metrics["courses"].(float64) != 2 {
		t.Fatalf("expected 2 courses, got %v", metrics["courses"])
	}
	if metrics["courseRegistrations"].(float64) != 1 {
		t.Fatalf("expected 1 registration, got %v", metrics["courseRegistrations"])
	}
}

func TestGetRegisteredUsersAdminProjection(t *testing.T) {
	app, db := setupCourseTestApp(t)
	user, token := seedUser(t, db, "ama@test.io", models.RoleUser)
	_, adminToken := seedUser(t, db, "admin@test.io", models.RoleAdmin)
	course := seedCourse(t, db, "Web Development")

	doJSON(t, app, http.MethodPost, "/api/v1/courses/register", token, `{"courseTitle":"Web Development"}`)

	resp, decoded := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/dashboard/%d/registeredUsers", course.ID), adminToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	users, ok := decoded["users"].([]any)
	if !ok || len(users) != 1 {
		t.Fatalf("expected one registered user, got %v", decoded["users"])
	}
	first := users[0].(map[string]any)
	if first["email"] != user.Email {
		t.Fatalf("unexpected user in projection: %v", first)
	}
	if _, leaked := first["password"]; leaked {
		t.Fatalf("password leaked in projection: %v", first)
	}
}
