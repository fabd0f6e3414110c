package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration values from environment variables onto the
// provided Config. A .env file in the working directory is loaded first when
// present; already-exported variables win over the file.
//
// Recognized variables:
//
//	ADDRESS               HTTP bind address
//	DATABASE_DSN          PostgreSQL DSN
//	SECRET_KEY            JWT HMAC secret
//	TOKEN_VALIDITY        session token lifetime (time.ParseDuration)
//	RESET_TOKEN_VALIDITY  password-reset token lifetime (time.ParseDuration)
//	COOKIE_SECURE         "true"/"false"
//	RESEND_API_KEY        Resend API key
//	EMAIL_SENDER          From address for outgoing mail
//	APP_BASE_URL          public base URL for reset links
//	FRONTEND_ORIGIN       origin allowed by CORS
func parseEnv(config *Config) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("RESET_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.ResetTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.CookieSecure = b
		}
	}
	if v, ok := os.LookupEnv("RESEND_API_KEY"); ok {
		config.EmailAPIKey = v
	}
	if v, ok := os.LookupEnv("EMAIL_SENDER"); ok {
		config.EmailSender = v
	}
	if v, ok := os.LookupEnv("APP_BASE_URL"); ok {
		config.AppBaseURL = v
	}
	if v, ok := os.LookupEnv("FRONTEND_ORIGIN"); ok {
		config.FrontendOrigin = v
	}
}
