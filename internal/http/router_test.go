package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weboid/site-backend/internal/config"
	"github.com/weboid/site-backend/internal/mail"
	"github.com/weboid/site-backend/internal/store"
)

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Nil sender: emails are logged, never sent.
	RegisterRoutes(r, store.NewMemory(), mail.NewDispatcher(nil), cfg)
	return r
}

func devConfig() config.Config {
	return config.Config{
		AppEnv:      "development",
		APIBasePath: "/api",
		RateLimit:   100,
		RateWindow:  time.Minute,
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func do(r *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	var rd *bytes.Buffer
	if body == "" {
		rd = bytes.NewBufferString("")
	} else {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, devConfig())

	for _, path := range []string{"/health", "/api/health"} {
		w := do(r, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, want 200", path, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("health body: %v", err)
		}
		if body["status"] != "Server is running" {
			t.Fatalf("status = %v", body["status"])
		}
		if body["environment"] != "development" {
			t.Fatalf("environment = %v", body["environment"])
		}
		if _, ok := body["timestamp"].(string); !ok {
			t.Fatalf("timestamp missing: %v", body)
		}
	}

	w := do(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", w.Code)
	}
}

func TestRegisterRoutes_Fallbacks(t *testing.T) {
	r := newTestRouter(t, devConfig())

	w := do(r, http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route = %d, want 404", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["success"] != false || body["message"] != "API endpoint not found" {
		t.Fatalf("404 envelope = %v", body)
	}

	w = do(r, http.MethodPatch, "/api/contacts", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PATCH /api/contacts = %d, want 405", w.Code)
	}
}

func TestRegisterRoutes_ContactLifecycle(t *testing.T) {
	r := newTestRouter(t, devConfig())

	w := do(r, http.MethodPost, "/api/contacts",
		`{"name":"Jane","email":"jane@example.com","subject":"Hello","message":"I need a website"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create contact = %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ID              string `json:"id"`
			ReferenceNumber string `json:"reference_number"`
			Status          string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.Success || created.Data.ID == "" {
		t.Fatalf("unexpected create payload: %s", w.Body.String())
	}
	if len(created.Data.ReferenceNumber) != 3 {
		t.Fatalf("reference = %q, want 3 digits", created.Data.ReferenceNumber)
	}
	if created.Data.Status != "new" {
		t.Fatalf("status = %q", created.Data.Status)
	}

	// Fetch via reference number, the shorthand customers quote back.
	w = do(r, http.MethodGet, "/api/contacts/"+created.Data.ReferenceNumber, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get by reference = %d", w.Code)
	}

	w = do(r, http.MethodPut, "/api/contacts/"+created.Data.ID, `{"status":"in_progress"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"in_progress"`) {
		t.Fatalf("update body = %s", w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/contacts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	var listed struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &listed)
	if listed.Count != 1 {
		t.Fatalf("count = %d, want 1", listed.Count)
	}

	w = do(r, http.MethodDelete, "/api/contacts/"+created.Data.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete = %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/contacts/"+created.Data.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", w.Code)
	}
}

func TestRegisterRoutes_TicketLifecycle(t *testing.T) {
	r := newTestRouter(t, devConfig())

	w := do(r, http.MethodPost, "/api/tickets",
		`{"title":"Site down","description":"Homepage 500s","userEmail":"ops@example.com","userName":"Ops"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create ticket = %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID       string `json:"id"`
			Status   string `json:"status"`
			Priority string `json:"priority"`
		} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.Data.Status != "open" || created.Data.Priority != "medium" {
		t.Fatalf("defaults = %+v", created.Data)
	}

	w = do(r, http.MethodGet, "/api/tickets/status/open", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.Data.ID) {
		t.Fatalf("list by status = %d body=%s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPut, "/api/tickets/"+created.Data.ID, `{"status":"resolved"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"resolved"`) {
		t.Fatalf("update = %d body=%s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_ValidationEnvelope(t *testing.T) {
	r := newTestRouter(t, devConfig())

	w := do(r, http.MethodPost, "/api/contacts", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty contact = %d", w.Code)
	}
	var body struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Message != "Validation failed" || len(body.Errors) == 0 {
		t.Fatalf("validation envelope = %+v", body)
	}
}

func TestRegisterRoutes_RateLimit(t *testing.T) {
	cfg := devConfig()
	cfg.RateLimit = 2
	r := newTestRouter(t, cfg)

	for i := 0; i < 2; i++ {
		if w := do(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, w.Code)
		}
	}
	w := do(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("over limit = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
}

func TestCORSConfig_Production(t *testing.T) {
	cfg := config.Config{
		AppEnv: "production",
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://weboid.dev", "https://www.weboid.dev"},
			PreviewSuffix:  "-weboid-teams-projects.vercel.app",
		},
	}
	cc := corsConfig(cfg)
	if cc.AllowAllOrigins {
		t.Fatal("production must not allow all origins")
	}
	cases := []struct {
		origin string
		want   bool
	}{
		{"https://weboid.dev", true},
		{"https://www.weboid.dev", true},
		{"https://pr-42-weboid-teams-projects.vercel.app", true},
		{"https://weboid-teams-projects.vercel.app/deploy", true},
		{"https://evil.example.com", false},
		{"http://weboid.dev", false},
	}
	for _, tc := range cases {
		if got := cc.AllowOriginFunc(tc.origin); got != tc.want {
			t.Errorf("AllowOriginFunc(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}

func TestCORSConfig_Development(t *testing.T) {
	cc := corsConfig(devConfig())
	if !cc.AllowAllOrigins {
		t.Fatal("development should allow all origins")
	}
	if cc.AllowCredentials {
		t.Fatal("credentials must be off with wildcard origins")
	}
}

func TestGroupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := groupWithPrefix(r, "/")
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := do(r, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("root group ping = %d %q", w.Code, w.Body.String())
	}
}
