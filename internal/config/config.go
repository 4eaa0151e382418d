package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// UploadConfig holds the upload transport selection and S3-compatible
// storage settings, plus the optional CDN distribution used for signed
// download URLs.
type UploadConfig struct {
	// Transport selects the storage backend: "database", "s3" or "gcs".
	// Unknown or empty values fall back to "database".
	Transport string

	Bucket          string
	Region          string
	Endpoint        string
	ForcePathStyle  bool
	UseSSL          bool
	AccessKeyID     string
	SecretAccessKey string

	// CDN distribution for signed download URLs. When DistributionDomain
	// is set, download URLs are signed against the CDN instead of the
	// storage backend.
	DistributionDomain string
	DistributionKeyID  string
	DistributionKey    string
}

// GCSConfig holds Google Cloud Storage settings for the "gcs" transport.
// Either CredentialsFile or the ClientEmail/PrivateKey pair must be set.
type GCSConfig struct {
	Bucket          string
	ProjectID       string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string
	BillingEnabled bool
	Database       DatabaseConfig
	Upload         UploadConfig
	GCS            GCSConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"), // default only for non-sensitive value
		BillingEnabled: getEnvBool("BILLING_ENABLED", false),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Upload: UploadConfig{
			Transport:          getEnv("UPLOAD_TRANSPORT", "database"),
			Bucket:             getEnv("UPLOAD_BUCKET", ""),
			Region:             getEnv("UPLOAD_REGION", "us-east-1"),
			Endpoint:           getEnv("UPLOAD_ENDPOINT", ""),
			ForcePathStyle:     getEnvBool("UPLOAD_FORCE_PATH_STYLE", false),
			UseSSL:             getEnvBool("UPLOAD_USE_SSL", true),
			AccessKeyID:        getEnv("UPLOAD_ACCESS_KEY_ID", ""),
			SecretAccessKey:    getEnv("UPLOAD_SECRET_ACCESS_KEY", ""),
			DistributionDomain: getEnv("UPLOAD_DISTRIBUTION_DOMAIN", ""),
			DistributionKeyID:  getEnv("UPLOAD_DISTRIBUTION_KEY_ID", ""),
			DistributionKey:    getEnv("UPLOAD_DISTRIBUTION_KEY_CONTENTS", ""),
		},
		GCS: GCSConfig{
			Bucket:          getEnv("GCS_BUCKET", ""),
			ProjectID:       getEnv("GCS_PROJECT_ID", ""),
			ClientEmail:     getEnv("GCS_CLIENT_EMAIL", ""),
			PrivateKey:      getEnv("GCS_PRIVATE_KEY", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
