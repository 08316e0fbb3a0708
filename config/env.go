package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yoockh/jobboard/internal/auth"
)

// App is the process configuration read from the environment.
type App struct {
	Port        string
	FrontendURL string
	LogLevel    string

	DatabaseURL  string
	JWTSecret    string
	JWTExpiresIn time.Duration

	// optional infrastructure, empty means disabled
	RedisURL           string
	MongoURI           string
	MongoDB            string
	GCSBucket          string
	GCSCredentialsFile string
}

func (a App) RedisEnabled() bool { return a.RedisURL != "" }
func (a App) MongoEnabled() bool { return a.MongoURI != "" }
func (a App) GCSEnabled() bool   { return a.GCSBucket != "" }

func Load() (App, error) {
	a := App{
		Port:               getenv("PORT", "3000"),
		FrontendURL:        getenv("FRONTEND_URL", "http://localhost:5173"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		DatabaseURL:        getenv("DATABASE_URL", ""),
		JWTSecret:          getenv("JWT_SECRET", ""),
		RedisURL:           firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),
		MongoURI:           getenv("MONGO_URI", ""),
		MongoDB:            getenv("MONGO_DB", "jobboard"),
		GCSBucket:          getenv("GCS_BUCKET", ""),
		GCSCredentialsFile: getenv("GCS_CREDENTIALS_FILE", ""),
	}

	var missing []string
	if a.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if a.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return App{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	ttl, err := auth.ParseExpiry(os.Getenv("JWT_EXPIRES_IN"))
	if err != nil {
		return App{}, errors.Join(errors.New("JWT_EXPIRES_IN"), err)
	}
	a.JWTExpiresIn = ttl

	return a, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
