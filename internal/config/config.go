package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// It is constructed once in main and treated as immutable afterwards.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	SecretKey          string
	JWTAlgorithm       string // HS256, HS384 or HS512
	AccessTokenExpires time.Duration

	// PublicBaseURL is the externally reachable address of this API,
	// used to build verification links in outgoing mail.
	PublicBaseURL string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users    string
	Contacts string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	port := getEnv("APP_PORT", "8000")
	return &Config{
		AppPort: port,
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:    getEnv("DYNAMO_TABLE_USERS", "users"),
			Contacts: getEnv("DYNAMO_TABLE_CONTACTS", "contacts"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "contacts-api-avatars"),

		SecretKey:          getEnv("SECRET_KEY", ""),
		JWTAlgorithm:       getEnv("ALGORITHM", "HS256"),
		AccessTokenExpires: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", fmt.Sprintf("http://127.0.0.1:%s", port)),

		SMTPHost:     getEnv("SMTP_SERVER", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_EMAIL", "noreply@example.com"),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
