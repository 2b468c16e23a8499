package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret      string
		SessionTTL     time.Duration
		CookieSecure   bool
		AllowedOrigins []string
	}
	Upload struct {
		StagingDir string
		MaxBytes   int64
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("VIBEFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/vibefy.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.sessionttl", "720h")
	v.SetDefault("auth.cookiesecure", false)
	v.SetDefault("auth.allowedorigins", []string{"http://localhost:5173"})
	v.SetDefault("upload.stagingdir", os.TempDir())
	v.SetDefault("upload.maxbytes", int64(50<<20))
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "songs")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr cannot be empty")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		problems = append(problems, "database.path cannot be empty")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		problems = append(problems, "auth.jwtsecret is required")
	}
	if c.Auth.SessionTTL <= 0 {
		problems = append(problems, fmt.Sprintf("auth.sessionttl must be positive, got: %s", c.Auth.SessionTTL))
	}
	if c.Upload.MaxBytes <= 0 {
		problems = append(problems, fmt.Sprintf("upload.maxbytes must be positive, got: %d", c.Upload.MaxBytes))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got: %s", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be one of: text, json, got: %s", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// loadDotEnv exports KEY=value pairs from ./.env without overriding variables
// already set. An "export " prefix and matching quotes around the value are
// accepted.
func loadDotEnv() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimPrefix(strings.TrimSpace(line), "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.HasPrefix(key, "#") {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, unquote(strings.TrimSpace(value)))
	}
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
