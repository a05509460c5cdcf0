package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rpupo63/gaffer-portfolio-backend/database"
	"github.com/rpupo63/gaffer-portfolio-backend/services"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "s3cret-pass"
)

type testEnv struct {
	router     http.Handler
	db         database.Database
	creds      *services.Credentials
	notifier   *services.Notifier
	uploadDir  string
	emailCount atomic.Int32
	emailCode  atomic.Int32
}

func newTestEnv(t *testing.T, overrides map[string]string) *testEnv {
	t.Helper()
	env := &testEnv{uploadDir: t.TempDir()}
	env.emailCode.Store(http.StatusOK)

	emailjs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.emailCount.Add(1)
		w.WriteHeader(int(env.emailCode.Load()))
	}))
	t.Cleanup(emailjs.Close)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	values := map[string]string{
		"DB_DRIVER":                     "sqlite",
		"DATABASE_URL":                  "file:" + name + "?mode=memory&cache=shared",
		"UPLOAD_DIR":                    env.uploadDir,
		"EMAILJS_URL":                   emailjs.URL,
		"EMAILJS_SERVICE_ID":            "service",
		"EMAILJS_TEMPLATE_ID":           "template",
		"EMAILJS_USER_ID":               "user",
		"ADMIN_USERNAME":                testAdminUser,
		"ADMIN_PASSWORD":                testAdminPassword,
		"CONTACT_RATE_LIMIT_PER_MINUTE": "100",
		"LOGIN_RATE_LIMIT_PER_MINUTE":   "100",
	}
	for k, v := range overrides {
		values[k] = v
	}
	settings := config.Load(values)

	ctx := context.Background()
	db, err := database.Open(ctx, settings.Database)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.EnsureIndexes(ctx, db)
	env.db = database.New(db)
	t.Cleanup(func() { _ = env.db.Close() })

	env.creds = services.NewCredentials("test-secret", time.Hour)
	if _, err := services.BootstrapAdmin(ctx, env.db.AdminRepo(), env.creds, settings.Admin, false); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	env.notifier = services.NewNotifier(settings.EmailJS, emailjs.Client())
	t.Cleanup(env.notifier.Wait)

	uploader := services.NewUploader(nil, services.NewLocalStore(env.uploadDir))
	env.router = newRouter(env.db, Services{
		Credentials: env.creds,
		Uploader:    uploader,
		Notifier:    env.notifier,
	}, withSettings(settings), withStartupTime(time.Now()))
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/admin/login", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp LoginResponse
	decodeBody(t, rec, &resp)
	return resp.AccessToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, field string) ErrorResponse {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Status != "error" || resp.Detail == "" {
		t.Fatalf("unexpected error body %+v", resp)
	}
	if field != "" && resp.Field != field {
		t.Fatalf("expected field %q, got %q (%s)", field, resp.Field, resp.Detail)
	}
	return resp
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{"/", "/api/"} {
		rec := env.do(t, http.MethodGet, path, nil, "")
		var root RootResponse
		decodeBody(t, rec, &root)
		if rec.Code != http.StatusOK || root.Status != "online" || root.Version == "" {
			t.Fatalf("%s: unexpected response %d %+v", path, rec.Code, root)
		}
	}

	rec := env.do(t, http.MethodGet, "/health", nil, "")
	var health HealthResponse
	decodeBody(t, rec, &health)
	if health.Status != "healthy" || !health.Database || !health.EmailConfigured || health.Cloudinary {
		t.Fatalf("unexpected health %+v", health)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	env.do(t, http.MethodGet, "/health", nil, "")

	rec := env.do(t, http.MethodGet, "/metrics", nil, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "gaffer_portfolio_http_request_duration_seconds") {
		t.Fatalf("metrics not exposed: %d", rec.Code)
	}
}

func TestUnknownErrorsAreGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponder(testLogger()).WriteError(rec, context.DeadlineExceeded)
	resp := expectError(t, rec, http.StatusInternalServerError, "")
	if resp.Detail != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp.Detail)
	}
}

func TestCORSDoesNotAllowCredentials(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/projects", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("credentials must not be allowed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("wildcard origins should still be served: %d %v", rec.Code, rec.Header())
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("credentials must not be allowed on simple requests, got %q", got)
	}
}
