package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	// Server
	Port            string        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Storage
	DataDir    string `env:"DATA_DIR" envDefault:"data"`
	UploadsDir string `env:"UPLOADS_DIR" envDefault:"uploads"`

	// Session tokens. The signing secret has no default on purpose:
	// startup fails unless it is provided.
	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	// LogFile switches logging to a size-rotated file when set.
	LogFile string `env:"LOG_FILE"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// When true, project listing and recent endpoints only return the
	// caller's own projects instead of the historical all-faculty view.
	OwnerScopedProjects bool `env:"PROJECTS_OWNER_SCOPED" envDefault:"false"`

	// Uploads
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"` // 5 MiB

	// Notification sweep
	SweepInterval    time.Duration `env:"NOTIFY_SWEEP_INTERVAL" envDefault:"360h"` // 15 days
	NotifyConfigPath string        `env:"NOTIFY_CONFIG_PATH"`

	// SMTP for digest emails. The sweep skips delivery when no host is set.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
