package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("VIBEFY_AUTH_JWTSECRET", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("expected default addr, got %s", cfg.Server.Addr)
	}
	if cfg.Database.Path != "data/vibefy.db" {
		t.Errorf("expected default db path, got %s", cfg.Database.Path)
	}
	if cfg.Auth.SessionTTL != 30*24*time.Hour {
		t.Errorf("expected 30 day session ttl, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Upload.MaxBytes != 50<<20 {
		t.Errorf("expected 50 MiB upload limit, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.Storage.KeyPrefix != "songs" {
		t.Errorf("expected key prefix songs, got %s", cfg.Storage.KeyPrefix)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults: %s/%s", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	t.Setenv("VIBEFY_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("VIBEFY_AUTH_JWTSECRET", "s3cret")
	t.Setenv("VIBEFY_AUTH_SESSIONTTL", "2h")
	t.Setenv("VIBEFY_AUTH_COOKIESECURE", "true")
	t.Setenv("VIBEFY_UPLOAD_MAXBYTES", "1024")
	t.Setenv("VIBEFY_STORAGE_BUCKET", "vibefy-songs")
	t.Setenv("VIBEFY_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("expected addr from env, got %s", cfg.Server.Addr)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("expected secret from env, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h ttl, got %s", cfg.Auth.SessionTTL)
	}
	if !cfg.Auth.CookieSecure {
		t.Error("expected secure cookies")
	}
	if cfg.Upload.MaxBytes != 1024 {
		t.Errorf("expected max bytes 1024, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.Storage.Bucket != "vibefy-songs" {
		t.Errorf("expected bucket from env, got %s", cfg.Storage.Bucket)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected json log format, got %s", cfg.Log.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.Server.Addr = ":8080"
		cfg.Database.Path = "data/vibefy.db"
		cfg.Auth.JWTSecret = "secret"
		cfg.Auth.SessionTTL = time.Hour
		cfg.Upload.MaxBytes = 1
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = " " }, "auth.jwtsecret"},
		{"zero ttl", func(c *Config) { c.Auth.SessionTTL = 0 }, "auth.sessionttl"},
		{"zero max bytes", func(c *Config) { c.Upload.MaxBytes = 0 }, "upload.maxbytes"},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error mentioning %s, got %v", tt.name, tt.want, err)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\n" +
		"VIBEFY_DOTENV_SET=\"from-file\"\n" +
		"export VIBEFY_DOTENV_EXPORTED='quoted value'\n" +
		"VIBEFY_DOTENV_KEEP=from-file\n" +
		"invalid line\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("VIBEFY_DOTENV_KEEP", "from-env")
	for _, key := range []string{"VIBEFY_DOTENV_SET", "VIBEFY_DOTENV_EXPORTED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	loadDotEnv()

	if got := os.Getenv("VIBEFY_DOTENV_SET"); got != "from-file" {
		t.Errorf("expected value from .env, got %q", got)
	}
	if got := os.Getenv("VIBEFY_DOTENV_EXPORTED"); got != "quoted value" {
		t.Errorf("expected exported quoted value, got %q", got)
	}
	if got := os.Getenv("VIBEFY_DOTENV_KEEP"); got != "from-env" {
		t.Errorf("expected existing env to win, got %q", got)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"a b"`, "a b"},
		{`'a'`, "a"},
		{`"mismatched'`, `"mismatched'`},
		{`"`, `"`},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := unquote(tt.input); got != tt.expected {
			t.Errorf("unquote(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
