package config

import (
	"flag"
	"os"
	"time"

	"github.com/wellnessdiary/api/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, hours
//	-r int      reset token validity, minutes
//	-k string   Resend API key
//	-f string   From address for outgoing mail
//	-u string   public base URL for reset links
//	-o string   frontend origin allowed by CORS
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and converted to time.Duration.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-r", "-k", "-f", "-u", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")
	resetTokenValidity := fs.Int("r", int(config.ResetTokenValidityDuration.Minutes()), "reset_token_validity_duration (in minutes)")

	fs.StringVar(&config.EmailAPIKey, "k", config.EmailAPIKey, "email API key")
	fs.StringVar(&config.EmailSender, "f", config.EmailSender, "email sender address")
	fs.StringVar(&config.AppBaseURL, "u", config.AppBaseURL, "application base URL")
	fs.StringVar(&config.FrontendOrigin, "o", config.FrontendOrigin, "frontend origin for CORS")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
	config.ResetTokenValidityDuration = time.Duration(*resetTokenValidity) * time.Minute
}
