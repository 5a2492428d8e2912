package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/FolioForge/portfolio-backend/internal/auth"
	"github.com/FolioForge/portfolio-backend/internal/db"
	"github.com/FolioForge/portfolio-backend/internal/middleware"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

var testDB *gorm.DB

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up from internal/auth/).
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// No database available, skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	testDB = db.Connect()
	dbAvailable = true

	// Set up auth tables (idempotent).
	auth.Init(testDB)

	store := auth.NewStore(testDB)
	cfg := auth.Config{
		SessionTTL:    time.Hour,
		BcryptCost:    bcrypt.MinCost, // keep integration runs fast
		LookupTimeout: 5 * time.Second,
	}
	service := auth.NewService(store, store, auth.NewHasher(cfg.BcryptCost), cfg)

	// Mount auth routes on a chi router, matching production setup in main.go.
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORSMiddleware)
	r.Mount("/api/auth", auth.SetupRoutes(auth.NewHandler(service), service,
		middleware.NewIPRateLimiter(rate.Limit(1000), 1000)))

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createTestUser inserts a unique user into the database and registers a
// cleanup function to remove it. Returns the email and plaintext password.
func createTestUser(t *testing.T, role string) (email, password string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	email = fmt.Sprintf("testuser_%s@integration.test", uuid.New().String()[:8])
	password = "TestPass123!"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	user := auth.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  "Integration User",
		Role:         role,
		Active:       true,
	}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		testDB.Where("user_id = ?", user.ID).Delete(&auth.Session{})
		testDB.Where("id = ?", user.ID).Delete(&auth.User{})
	})

	return email, password
}

// loginUser posts to /api/auth/login and returns the parsed envelope plus the
// raw response.
func loginUser(t *testing.T, email, password string) (map[string]any, *http.Response) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err := http.Post(testServer.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/auth/login: %v", err)
	}

	raw := readBody(t, resp)
	var envelope map[string]any
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		t.Fatalf("invalid JSON body: %s", raw)
	}
	return envelope, resp
}

// authedRequest performs a request with a bearer token against the test server.
func authedRequest(t *testing.T, method, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, testServer.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// readBody reads and returns the response body as a string, draining and closing it.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

// TestLoginReturnsBearerToken verifies that POST /api/auth/login with valid
// credentials returns 200 and an envelope carrying a token and the user.
func TestLoginReturnsBearerToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestUser(t, auth.RoleUser)

	envelope, resp := loginUser(t, email, password)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %v", resp.StatusCode, envelope)
	}

	if envelope["success"] != true {
		t.Error("expected success=true in login response")
	}
	token, _ := envelope["token"].(string)
	if token == "" {
		t.Error("expected token in response body")
	}
	user, _ := envelope["user"].(map[string]any)
	if user == nil || user["email"] != email {
		t.Errorf("expected user with email %q, got %v", email, envelope["user"])
	}
}

// TestTokenPersistsAcrossRequests verifies that after login, GET /api/auth/me
// returns 200 with the correct user data when the same token is presented on
// each request.
func TestTokenPersistsAcrossRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestUser(t, auth.RoleUser)

	envelope, resp := loginUser(t, email, password)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %v", resp.StatusCode, envelope)
	}
	token, _ := envelope["token"].(string)

	for i := 0; i < 2; i++ {
		meResp := authedRequest(t, http.MethodGet, "/api/auth/me", token)
		meBody := readBody(t, meResp)
		if meResp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200 from /me, got %d; body: %s", i, meResp.StatusCode, meBody)
		}

		var me map[string]any
		if err := json.Unmarshal([]byte(meBody), &me); err != nil {
			t.Fatalf("invalid JSON body: %s", meBody)
		}
		user, _ := me["user"].(map[string]any)
		if user == nil || user["email"] != email {
			t.Errorf("expected email %q from /me, got: %s", email, meBody)
		}
	}
}

// TestSeededAdminRole verifies the admin scenario: a user with role admin
// logs in and /me reports role "admin".
func TestSeededAdminRole(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestUser(t, auth.RoleAdmin)

	envelope, resp := loginUser(t, email, password)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %v", resp.StatusCode, envelope)
	}
	token, _ := envelope["token"].(string)

	meResp := authedRequest(t, http.MethodGet, "/api/auth/me", token)
	meBody := readBody(t, meResp)
	if meResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /me, got %d; body: %s", meResp.StatusCode, meBody)
	}

	var me map[string]any
	if err := json.Unmarshal([]byte(meBody), &me); err != nil {
		t.Fatalf("invalid JSON body: %s", meBody)
	}
	user, _ := me["user"].(map[string]any)
	if user == nil || user["role"] != "admin" {
		t.Errorf("expected role admin, got: %s", meBody)
	}
}

// TestLogoutInvalidatesSession verifies the full logout flow: login, logout,
// then /me with the same token returns 401. This confirms the session is
// deleted from the database on logout.
func TestLogoutInvalidatesSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestUser(t, auth.RoleUser)

	envelope, resp := loginUser(t, email, password)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %v", resp.StatusCode, envelope)
	}
	token, _ := envelope["token"].(string)

	logoutResp := authedRequest(t, http.MethodPost, "/api/auth/logout", token)
	logoutBody := readBody(t, logoutResp)
	if logoutResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /logout, got %d; body: %s", logoutResp.StatusCode, logoutBody)
	}

	meResp := authedRequest(t, http.MethodGet, "/api/auth/me", token)
	meBody := readBody(t, meResp)
	if meResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 from /me after logout, got %d; body: %s", meResp.StatusCode, meBody)
	}
}

// TestExpiredSessionRejected verifies that a session manually expired in the
// database is rejected with 401.
func TestExpiredSessionRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestUser(t, auth.RoleUser)

	envelope, resp := loginUser(t, email, password)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %v", resp.StatusCode, envelope)
	}
	token, _ := envelope["token"].(string)

	// Manually expire the session in the database.
	if err := testDB.Model(&auth.Session{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-1*time.Hour)).Error; err != nil {
		t.Fatalf("failed to expire session: %v", err)
	}

	meResp := authedRequest(t, http.MethodGet, "/api/auth/me", token)
	meBody := readBody(t, meResp)
	if meResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 from /me with expired session, got %d; body: %s", meResp.StatusCode, meBody)
	}
}

// TestDeactivatedUserRejected verifies that flipping the active flag off
// after login kills the live token.
func TestDeactivatedUserRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestUser(t, auth.RoleUser)

	envelope, resp := loginUser(t, email, password)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %v", resp.StatusCode, envelope)
	}
	token, _ := envelope["token"].(string)

	if err := testDB.Model(&auth.User{}).
		Where("email = ?", email).
		Update("active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	meResp := authedRequest(t, http.MethodGet, "/api/auth/me", token)
	meBody := readBody(t, meResp)
	if meResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 from /me after deactivation, got %d; body: %s", meResp.StatusCode, meBody)
	}
}
