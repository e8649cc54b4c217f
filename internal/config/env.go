package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string
	AppEnv  string

	LogLevel string

	DBDriver string
	DBDSN    string

	UploadDir          string
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3AccessKeyID      string
	S3SecretAccessKey  string
	CORSAllowedOrigins []string

	JWTSecret     string
	AdminUser     string
	AdminPassword string
}

// AuthEnabled reports whether pages require a signed-in user.
func (e Env) AuthEnabled() bool {
	return e.JWTSecret != ""
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr:           getenv("APP_ADDR", ":8080"),
		GinMode:           getenv("GIN_MODE", ""),
		AppEnv:            getenv("APP_ENV", "development"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		DBDriver:          strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		DBDSN:             getenv("DB_DSN", ""),
		UploadDir:         getenv("UPLOAD_DIR", "uploads"),
		S3Bucket:          getenv("S3_BUCKET", ""),
		S3Region:          getenv("S3_REGION", "auto"),
		S3Endpoint:        getenv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getenv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getenv("S3_SECRET_ACCESS_KEY", ""),
		JWTSecret:         getenv("JWT_SECRET", ""),
		AdminUser:         getenv("ADMIN_USER", "admin"),
		AdminPassword:     getenv("ADMIN_PASSWORD", ""),
	}

	if env.DBDSN == "" {
		switch env.DBDriver {
		case DriverMySQL:
			env.DBDSN = "root:@tcp(127.0.0.1:3306)/transport?charset=utf8mb4&multiStatements=true&timeout=5s&readTimeout=30s&writeTimeout=30s"
		default:
			env.DBDSN = "transport.db"
		}
	}

	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	}

	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
