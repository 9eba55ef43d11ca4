package config

import (
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"gagyebu/internal/models"
)

// Member holds one household member's identity and the Google credentials
// stored for them by the session provider.
type Member struct {
	Email        string
	Role         models.Role
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
}

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// JWT issued by the session provider
	JWTSecret string

	// Shared key for scheduled syncs
	SyncAPIKey string

	// Google OAuth client used to refresh member tokens
	GoogleClientID     string
	GoogleClientSecret string

	// Source export location
	DriveFolderName  string
	SourceFilePrefix string
	ScratchDir       string

	// Household
	Location *time.Location
	Members  []Member

	// Deadlines
	DriveRequestTimeout time.Duration
	SyncTimeout         time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		JWTSecret:  getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		SyncAPIKey: getEnv("SYNC_API_KEY", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),

		DriveFolderName:  getEnv("GOOGLE_DRIVE_FOLDER_NAME", "clevmoney"),
		SourceFilePrefix: getEnv("SOURCE_FILE_PREFIX", "clevmoney_"),
		ScratchDir:       getEnv("SCRATCH_DIR", os.TempDir()),
	}

	tzName := getEnv("HOUSEHOLD_TIMEZONE", "Asia/Seoul")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Warning: unknown HOUSEHOLD_TIMEZONE '%s', falling back to fixed UTC+9\n", tzName)
		loc = time.FixedZone("KST", 9*60*60)
	}
	config.Location = loc

	config.DriveRequestTimeout = getDuration("DRIVE_REQUEST_TIMEOUT", 60*time.Second)
	config.SyncTimeout = getDuration("SYNC_TIMEOUT", 3*time.Minute)

	config.Members = []Member{
		loadMember("HUSBAND", models.RoleHusband),
		loadMember("WIFE", models.RoleWife),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the process-wide configuration. Tests use it to avoid reading
// the environment.
func Set(cfg *Config) {
	appConfig = cfg
}

// Member returns the configured member with the given role.
func (c *Config) Member(role models.Role) (Member, bool) {
	for _, m := range c.Members {
		if m.Role == role {
			return m, true
		}
	}
	return Member{}, false
}

func loadMember(prefix string, role models.Role) Member {
	m := Member{
		Email:        strings.ToLower(getEnv(prefix+"_EMAIL", "")),
		Role:         role,
		AccessToken:  getEnv(prefix+"_ACCESS_TOKEN", ""),
		RefreshToken: getEnv(prefix+"_REFRESH_TOKEN", ""),
	}
	if raw := getEnv(prefix+"_TOKEN_EXPIRY", ""); raw != "" {
		expiry, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Printf("Warning: invalid %s_TOKEN_EXPIRY value '%s', treating token as non-expiring\n", prefix, raw)
		} else {
			m.TokenExpiry = expiry
		}
	}
	return m
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
