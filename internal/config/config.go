package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	Environment   string        `yaml:"environment"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	UploadDir     string        `yaml:"upload_dir"`
}

// Production reports whether the server runs with production hardening
// (Secure session cookies).
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	// Session tokens and cookies are valid for 7 days.
	tokenDuration := 7 * 24 * time.Hour

	cfg := &Config{
		Addr:          getEnv("LEADDESK_ADDR", ":8080"),
		Environment:   getEnv("LEADDESK_ENV", "development"),
		JWTSecret:     getEnv("LEADDESK_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("LEADDESK_DATABASE_PATH", "leaddesk.db"),
		TokenDuration: tokenDuration,
		UploadDir:     getEnv("LEADDESK_UPLOAD_DIR", "uploads"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
