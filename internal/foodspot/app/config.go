package app

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/media"
	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
)

const (
	KeyModeEphemeral  = "ephemeral"
	KeyModePersistent = "persistent"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	HTTPAddr            string        // Listen address (default: :8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	DatabaseDSN         string        // SQLite DSN (default: file:foodspot.db with pragmas)

	Issuer              string        // iss claim of session tokens (default: foodspot)
	Audience            string        // aud claim of session tokens (default: foodspot-web)
	SessionTTL          time.Duration // Absolute session lifetime (default: 30 days)
	SessionRefreshAfter time.Duration // Token age that triggers a sliding refresh (default: 24h)
	RevocationCheck     bool          // Consult the revocation list on sensitive routes (default: false)
	PasswordPepper      string        // Optional HMAC pepper for password hashes; required in prod

	KeyMode           string        // ephemeral or persistent (default: ephemeral)
	MasterKey         []byte        // Decoded MASTER_KEY; required in persistent mode
	KeyRotationPeriod time.Duration // Signing key age that triggers rotation (default: 720h)
	KeyGracePeriod    time.Duration // How long retired keys verify (default: 744h)

	RateLimitEnabled bool
	LoginRPM         int
	LoginBurst       int
	RegisterRPM      int
	RegisterBurst    int
	AuthTimeout      time.Duration // Deadline for auth and registration requests (default: 10s)

	UploadDir      string // Directory for filesystem uploads (default: ./uploads)
	UploadMaxBytes int64  // Largest accepted image (default: 5 MiB)
	S3             media.S3Config

	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	SwaggerEnabled       bool          // Serve /swagger/ (default: true outside prod)

	// masterKeyErr records a MASTER_KEY that failed to decode so Validate
	// can report it.
	masterKeyErr error
}

const defaultDSN = "file:foodspot.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

func LoadConfig() Config {
	env := getEnvOrDefault("ENV", "dev")

	cfg := Config{
		Env:       env,
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		HTTPAddr:            getEnvOrDefault("HTTP_ADDR", ":8080"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		DatabaseDSN:         getEnvOrDefault("DB_DSN", defaultDSN),

		Issuer:              getEnvOrDefault("JWT_ISSUER", "foodspot"),
		Audience:            getEnvOrDefault("JWT_AUDIENCE", "foodspot-web"),
		SessionTTL:          getEnvDurationOrDefault("SESSION_TTL", 30*24*time.Hour),
		SessionRefreshAfter: getEnvDurationOrDefault("SESSION_REFRESH_AFTER", 24*time.Hour),
		RevocationCheck:     getEnvBoolOrDefault("SESSION_REVOCATION_CHECK", false),
		PasswordPepper:      os.Getenv("PASSWORD_PEPPER"),

		KeyMode:           strings.ToLower(getEnvOrDefault("JWT_KEY_MODE", KeyModeEphemeral)),
		KeyRotationPeriod: getEnvDurationOrDefault("JWT_KEY_ROTATION_INTERVAL", 30*24*time.Hour),
		KeyGracePeriod:    getEnvDurationOrDefault("JWT_KEY_GRACE_PERIOD", 31*24*time.Hour),

		RateLimitEnabled: getEnvBoolOrDefault("RATE_LIMIT_ENABLED", true),
		LoginRPM:         getEnvIntOrDefault("RATE_LIMIT_LOGIN_RPM", 10),
		LoginBurst:       getEnvIntOrDefault("RATE_LIMIT_LOGIN_BURST", 5),
		RegisterRPM:      getEnvIntOrDefault("RATE_LIMIT_REGISTER_RPM", 5),
		RegisterBurst:    getEnvIntOrDefault("RATE_LIMIT_REGISTER_BURST", 3),
		AuthTimeout:      getEnvDurationOrDefault("AUTH_REQUEST_TIMEOUT", 10*time.Second),

		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: int64(getEnvIntOrDefault("UPLOAD_MAX_BYTES", media.DefaultMaxBytes)),
		S3: media.S3Config{
			Bucket:    os.Getenv("UPLOAD_S3_BUCKET"),
			Region:    os.Getenv("UPLOAD_S3_REGION"),
			Endpoint:  os.Getenv("UPLOAD_S3_ENDPOINT"),
			AccessKey: os.Getenv("UPLOAD_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("UPLOAD_S3_SECRET_KEY"),
			PublicURL: os.Getenv("UPLOAD_S3_PUBLIC_URL"),
		},

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
		SwaggerEnabled:       getEnvBoolOrDefault("SWAGGER_ENABLED", env != "prod"),
	}

	if raw := os.Getenv("MASTER_KEY"); raw != "" {
		key, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			cfg.masterKeyErr = fmt.Errorf("MASTER_KEY is not valid base64: %w", err)
		} else {
			cfg.MasterKey = key
		}
	}

	return cfg
}

// Production reports whether the service runs in the prod environment.
func (c Config) Production() bool {
	return c.Env == "prod"
}

// Validate rejects settings the service cannot start with. All problems are
// reported together.
func (c Config) Validate() error {
	var errs []error

	if c.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER must not be empty"))
	}
	if c.Audience == "" {
		errs = append(errs, errors.New("JWT_AUDIENCE must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.SessionRefreshAfter <= 0 || c.SessionRefreshAfter >= c.SessionTTL {
		errs = append(errs, errors.New("SESSION_REFRESH_AFTER must be positive and shorter than SESSION_TTL"))
	}

	switch c.KeyMode {
	case KeyModeEphemeral:
	case KeyModePersistent:
		switch {
		case c.masterKeyErr != nil:
			errs = append(errs, c.masterKeyErr)
		case len(c.MasterKey) == 0:
			errs = append(errs, errors.New("MASTER_KEY is required when JWT_KEY_MODE=persistent"))
		case len(c.MasterKey) != cryptox.MasterKeySize:
			errs = append(errs, fmt.Errorf("MASTER_KEY must decode to %d bytes, got %d", cryptox.MasterKeySize, len(c.MasterKey)))
		}
		if c.KeyGracePeriod < c.SessionTTL {
			errs = append(errs, errors.New("JWT_KEY_GRACE_PERIOD must not be shorter than SESSION_TTL"))
		}
	default:
		errs = append(errs, fmt.Errorf("JWT_KEY_MODE must be %s or %s, got %q", KeyModeEphemeral, KeyModePersistent, c.KeyMode))
	}

	if c.Production() && c.PasswordPepper == "" {
		errs = append(errs, errors.New("PASSWORD_PEPPER is required when ENV=prod"))
	}

	if c.RateLimitEnabled {
		if c.LoginRPM <= 0 || c.LoginBurst <= 0 || c.RegisterRPM <= 0 || c.RegisterBurst <= 0 {
			errs = append(errs, errors.New("rate limits must be positive when RATE_LIMIT_ENABLED=true"))
		}
	}
	if c.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	if c.S3.Bucket != "" && c.S3.PublicURL == "" {
		errs = append(errs, errors.New("UPLOAD_S3_PUBLIC_URL is required with UPLOAD_S3_BUCKET"))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
