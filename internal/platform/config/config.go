package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// VisionKeyPlaceholder is the sample value shipped in .env.example. A key equal
// to it is treated the same as no key at all.
const VisionKeyPlaceholder = "your_openai_api_key"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string `mapstructure:"REFRESH_TOKEN_COOKIE_PATH"`
	RefreshTokenSecret         string

	// AuthTimeout bounds the credential check during sign-in. Kept separate
	// from the vision timeout; the storage layer has no such wrapper.
	AuthTimeout time.Duration

	// Vision (receipt extraction) service
	VisionAPIKey       string `mapstructure:"OPENAI_API_KEY"`
	VisionAPIURL       string `mapstructure:"VISION_API_URL"`
	VisionModel        string `mapstructure:"VISION_MODEL"`
	VisionTimeout      time.Duration
	MaxReceiptFileSize int64 `mapstructure:"MAX_RECEIPT_FILE_SIZE"`

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Analytics
	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "dompetku-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/auth")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("AUTH_TIMEOUT", "8s")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("VISION_API_URL", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("VISION_MODEL", "gpt-4o")
	viper.SetDefault("VISION_TIMEOUT", "30s")
	viper.SetDefault("MAX_RECEIPT_FILE_SIZE", 10*1024*1024)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	refreshTokenExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshTokenExpiryDuration, err := time.ParseDuration(refreshTokenExpiryStr)
	if err != nil {
		refreshTokenExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshTokenExpiryStr, refreshTokenExpiryDuration)
	}
	cfg.RefreshTokenExpiryDuration = refreshTokenExpiryDuration
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")
	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "default_insecure_refresh_secret_please_change_this_!@#$" {
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	authTimeoutStr := viper.GetString("AUTH_TIMEOUT")
	authTimeout, err := time.ParseDuration(authTimeoutStr)
	if err != nil {
		authTimeout = 8 * time.Second
		log.Printf("Warning: Invalid value for AUTH_TIMEOUT ('%s'). Defaulting to %s.\n", authTimeoutStr, authTimeout)
	}
	cfg.AuthTimeout = authTimeout

	cfg.VisionAPIKey = viper.GetString("OPENAI_API_KEY")
	cfg.VisionAPIURL = viper.GetString("VISION_API_URL")
	cfg.VisionModel = viper.GetString("VISION_MODEL")
	visionTimeoutStr := viper.GetString("VISION_TIMEOUT")
	visionTimeout, err := time.ParseDuration(visionTimeoutStr)
	if err != nil {
		visionTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for VISION_TIMEOUT ('%s'). Defaulting to %s.\n", visionTimeoutStr, visionTimeout)
	}
	cfg.VisionTimeout = visionTimeout
	cfg.MaxReceiptFileSize = viper.GetInt64("MAX_RECEIPT_FILE_SIZE")
	if cfg.VisionAPIKey == "" || cfg.VisionAPIKey == VisionKeyPlaceholder {
		log.Println("Warning: OPENAI_API_KEY not set. Receipt scanning will report the service as not configured.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth environment variables incomplete. Google sign-in will not function.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
