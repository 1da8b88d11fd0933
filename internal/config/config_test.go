package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird")  // will normalize to "release"
	t.Setenv("APP_ENV", "staging") // will normalize to "development"

	// Logging
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("API_BASE_PATH", "api/") // no leading slash + trailing slash -> "/api"

	// Storage
	t.Setenv("DB_PATH", "db.sqlite")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_LIMIT", "nope") // -> default 100
	t.Setenv("RATE_WINDOW", "x")   // -> default 1m

	// Email
	t.Setenv("MJ_APIKEY_PUBLIC", "pub")
	t.Setenv("MJ_APIKEY_PRIVATE", "priv")
	t.Setenv("NOTIFY_EMAIL", "ops@example.com")

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("CORS_PREVIEW_SUFFIX", "-preview.example.app")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" ||
		cfg.AppEnv != "development" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	// Logging
	if cfg.LogLevel != "warn" || !cfg.LogPretty || cfg.APIBasePath != "/api" {
		t.Fatalf("logging fields unexpected: %+v", cfg)
	}

	// Storage
	if cfg.DBPath != "db.sqlite" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}

	// Rate limiting fell back to defaults on parse failure
	if cfg.RateLimit != 100 || cfg.RateWindow != time.Minute {
		t.Fatalf("rate fields unexpected: limit=%d window=%v", cfg.RateLimit, cfg.RateWindow)
	}

	// Email
	if cfg.Mail.APIKeyPublic != "pub" || cfg.Mail.APIKeyPrivate != "priv" || cfg.Mail.NotifyEmail != "ops@example.com" {
		t.Fatalf("mail fields unexpected: %+v", cfg.Mail)
	}

	// CORS: trimmed, empties dropped
	wantOrigins := []string{"https://a.com", "http://b"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, wantOrigins) {
		t.Fatalf("origins = %v, want %v", cfg.CORS.AllowedOrigins, wantOrigins)
	}
	if cfg.CORS.PreviewSuffix != "-preview.example.app" {
		t.Fatalf("preview suffix = %q", cfg.CORS.PreviewSuffix)
	}

	// Security
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security fields unexpected: %+v", cfg.Security)
	}

	// OTEL
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure ||
		cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel fields unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("default port = %q, want 8000", cfg.Port)
	}
	if cfg.APIBasePath != "/api" {
		t.Fatalf("default base path = %q", cfg.APIBasePath)
	}
	if cfg.DBPath != "" {
		t.Fatalf("default DBPath should be empty (memory store), got %q", cfg.DBPath)
	}
	if cfg.Mail.NotifyEmail != "weboidnz@gmail.com" {
		t.Fatalf("default notify = %q", cfg.Mail.NotifyEmail)
	}
	if len(cfg.CORS.AllowedOrigins) != 3 {
		t.Fatalf("default origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.IsProduction() {
		t.Fatal("default env should not be production")
	}
}

func TestLoad_IsProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production")
	}
}

// --- validation failures ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		k, v string
		want string
	}{
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"zero timeout", "READ_TIMEOUT", "0s", "timeouts"},
		{"negative header bytes", "MAX_HEADER_BYTES", "-1", "MAX_HEADER_BYTES"},
		{"negative hsts", "HSTS_MAX_AGE", "-1h", "HSTS_MAX_AGE"},
		{"lonely mailjet key", "MJ_APIKEY_PUBLIC", "pub", "MJ_APIKEY"},
		{"bad sampler", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.k, tc.v)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

// --- helpers ---

func TestHelpers_ParseFallbacks(t *testing.T) {
	t.Setenv("H_INT", "x")
	t.Setenv("H_FLOAT", "x")
	t.Setenv("H_BOOL", "maybe")
	t.Setenv("H_DUR", "x")
	if getint("H_INT", 7) != 7 {
		t.Fatal("getint fallback")
	}
	if getfloat("H_FLOAT", 0.5) != 0.5 {
		t.Fatal("getfloat fallback")
	}
	if getbool("H_BOOL", true) != true {
		t.Fatal("getbool fallback")
	}
	if getdur("H_DUR", time.Second) != time.Second {
		t.Fatal("getdur fallback")
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api/":   "/api",
		"/api/v2": "/api/v2",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}
