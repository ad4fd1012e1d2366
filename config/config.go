package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetStrings splits a comma separated value, dropping blanks.
func GetStrings(config map[string]string, key string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

// DatabaseConfig describes how to reach the entity store.
type DatabaseConfig struct {
	Type         string // supa, postgres or sqlite
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	ReplicaHosts []string
	SQLitePath   string
	AutoMigrate  bool
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminName         string
	AdminPasswordHash string
	AdminPassword     string
	AllowRegistration bool
}

type ServerConfig struct {
	Port            string
	APIPrefix       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	AcceptedOrigins []string
	MaxUploadBytes  int64
}

type LeetCodeConfig struct {
	GraphQLURL string
	CacheTTL   time.Duration
}

type ContactConfig struct {
	ResendAPIKey    string
	ResendFromEmail string
	Recipients      []string
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	TwilioTo        string
}

type StorageConfig struct {
	S3Bucket      string
	S3Region      string
	PublicBaseURL string
}

// Config is the typed view of the environment map.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	LeetCode LeetCodeConfig
	Contact  ContactConfig
	Storage  StorageConfig
}

// Load builds a Config from an environment map produced by New (optionally
// overlaid with SSM parameters).
func Load(env map[string]string) Config {
	dbType := strings.ToLower(GetString(env, "DB_TYPE", "supa"))

	dbConfig := DatabaseConfig{
		Type:         dbType,
		SSLMode:      GetString(env, "DB_SSLMODE", "require"),
		ReplicaHosts: GetStrings(env, "DB_REPLICA_HOSTS"),
		SQLitePath:   GetString(env, "SQLITE_PATH", "portfolio.db"),
		AutoMigrate:  GetBool(env, "AUTO_MIGRATE", true),
	}
	if dbType == "supa" {
		dbConfig.Host = GetString(env, "SUPABASE_DB_HOST", "")
		dbConfig.User = GetString(env, "SUPABASE_DB_USER", "")
		dbConfig.Password = GetString(env, "SUPABASE_DB_PASSWORD", "")
		dbConfig.Name = GetString(env, "SUPABASE_DB_NAME", "")
		dbConfig.Port = GetString(env, "SUPABASE_DB_PORT", "5432")
	} else {
		dbConfig.Host = GetString(env, "DB_HOST", "localhost")
		dbConfig.User = GetString(env, "DB_USER", "postgres")
		dbConfig.Password = GetString(env, "DB_PASSWORD", "")
		dbConfig.Name = GetString(env, "DB_NAME", "portfolio")
		dbConfig.Port = GetString(env, "DB_PORT", "5432")
	}

	return Config{
		Server: ServerConfig{
			Port:            GetString(env, "PORT", "8080"),
			APIPrefix:       strings.TrimSuffix(GetString(env, "API_PREFIX", "/api"), "/"),
			ReadTimeout:     time.Duration(GetInt(env, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
			WriteTimeout:    time.Duration(GetInt(env, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
			IdleTimeout:     time.Duration(GetInt(env, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
			AcceptedOrigins: GetStrings(env, "ACCEPTED_ORIGINS"),
			MaxUploadBytes:  int64(GetInt(env, "MAX_UPLOAD_MB", 5)) << 20,
		},
		Database: dbConfig,
		Auth: AuthConfig{
			JWTSecret:         GetString(env, "JWT_SECRET", ""),
			TokenTTL:          time.Duration(GetInt(env, "JWT_TTL_HOURS", 24)) * time.Hour,
			AdminEmail:        GetString(env, "ADMIN_EMAIL", ""),
			AdminName:         GetString(env, "ADMIN_NAME", "Portfolio Admin"),
			AdminPasswordHash: GetString(env, "ADMIN_PASSWORD_HASH", ""),
			AdminPassword:     GetString(env, "ADMIN_PASSWORD", ""),
			AllowRegistration: GetBool(env, "ALLOW_REGISTRATION", false),
		},
		LeetCode: LeetCodeConfig{
			GraphQLURL: GetString(env, "LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql"),
			CacheTTL:   time.Duration(GetInt(env, "LEETCODE_CACHE_MINUTES", 30)) * time.Minute,
		},
		Contact: ContactConfig{
			ResendAPIKey:    GetString(env, "RESEND_API_KEY", ""),
			ResendFromEmail: GetString(env, "RESEND_FROM_EMAIL", ""),
			Recipients:      GetStrings(env, "CONTACT_EMAIL"),
			TwilioSID:       GetString(env, "TWILIO_ACCOUNT_SID", ""),
			TwilioToken:     GetString(env, "TWILIO_AUTH_TOKEN", ""),
			TwilioFrom:      GetString(env, "TWILIO_FROM_NUMBER", ""),
			TwilioTo:        GetString(env, "TWILIO_TO_NUMBER", ""),
		},
		Storage: StorageConfig{
			S3Bucket:      GetString(env, "S3_BUCKET", ""),
			S3Region:      GetString(env, "S3_REGION", GetString(env, "AWS_REGION", "us-east-1")),
			PublicBaseURL: strings.TrimSuffix(GetString(env, "S3_PUBLIC_BASE_URL", ""), "/"),
		},
	}
}
