package config

import (
	"strings"
	"time"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
)

// Settings is the typed view of the environment used by the server and
// catalogctl.
type Settings struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	DataDir   string
	PublicDir string

	MediaBackend    string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
	MaxUploadBytes  int64

	AdminAPIKey             string
	AdminAPIKeySSMParameter string
	AcceptedOrigins         []string

	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
}

// Load reads Settings from an env map built by New.
func Load(c map[string]string) (Settings, error) {
	s := Settings{
		Port:         GetString(c, "PORT", "8080"),
		ReadTimeout:  time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout: time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,

		DataDir:   GetString(c, "DATA_DIR", "data"),
		PublicDir: GetString(c, "PUBLIC_DIR", "public"),

		MediaBackend:    strings.ToLower(GetString(c, "MEDIA_BACKEND", MediaBackendLocal)),
		S3Bucket:        GetString(c, "S3_BUCKET", ""),
		S3Prefix:        GetString(c, "S3_PREFIX", "uploads"),
		S3PublicBaseURL: GetString(c, "S3_PUBLIC_BASE_URL", ""),
		MaxUploadBytes:  int64(GetInt(c, "MAX_UPLOAD_MB", 64)) << 20,

		AdminAPIKey:             GetString(c, "ADMIN_API_KEY", ""),
		AdminAPIKeySSMParameter: GetString(c, "ADMIN_API_KEY_SSM_PARAMETER", ""),
		AcceptedOrigins:         GetList(c, "ACCEPTED_ORIGINS"),

		LogLevel:       GetString(c, "LOG_LEVEL", "info"),
		LogFormat:      GetString(c, "LOG_FORMAT", "console"),
		MetricsEnabled: GetBool(c, "METRICS_ENABLED", true),
	}

	switch s.MediaBackend {
	case MediaBackendLocal:
	case MediaBackendS3:
		if s.S3Bucket == "" {
			return Settings{}, errs.NewEnvironmentVariableError("S3_BUCKET")
		}
	default:
		return Settings{}, errs.NewInvalidConfigError("MEDIA_BACKEND", "must be local or s3")
	}
	if s.MaxUploadBytes <= 0 {
		return Settings{}, errs.NewInvalidConfigError("MAX_UPLOAD_MB", "must be positive")
	}

	return s, nil
}
