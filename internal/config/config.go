package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Config struct {
	Port            string
	DatabaseURL     string
	SessionKey      []byte
	JwtSigningKey   []byte
	Env             string // either prod or dev, disables https redirects and a few other bits
	SiteName        string
	SiteHost        string
	SupportEmail    string // displayed on the site for support queries
	NoReplyEmail    string // used for transactional emails
	EmailAPIKey     string // transactional email provider API key
	SentryDSN       string // optional, error reporting disabled when empty
	GeminiAPIKey    string // optional, chat assistant disabled when empty
	JobsPerPage     int    // configures how many jobs are shown per page result
	MaxUploadSize   int    // upload size cap in bytes for resumes/logos/avatars
	BcryptCost      int
	JwtExpiryHours  int
	URLProtocol     string
	AllowedJobTypes []string
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	jwtSigningKeyBytes, err := base64.StdEncoding.DecodeString(jwtSigningKey)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode jwt signing key to bytes")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		return Config{}, fmt.Errorf("SITE_NAME cannot be empty")
	}
	siteHost := os.Getenv("SITE_HOST")
	if siteHost == "" {
		return Config{}, fmt.Errorf("SITE_HOST cannot be empty")
	}
	supportEmail := os.Getenv("SUPPORT_EMAIL")
	if supportEmail == "" {
		return Config{}, fmt.Errorf("SUPPORT_EMAIL cannot be empty")
	}
	noReplyEmail := os.Getenv("NO_REPLY_EMAIL")
	if noReplyEmail == "" {
		return Config{}, fmt.Errorf("NO_REPLY_EMAIL cannot be empty")
	}
	emailAPIKey := os.Getenv("EMAIL_API_KEY")
	if emailAPIKey == "" {
		return Config{}, fmt.Errorf("EMAIL_API_KEY cannot be empty")
	}
	sentryDSN := os.Getenv("SENTRY_DSN")
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	bcryptCost := 12
	if bcryptCostStr := os.Getenv("BCRYPT_COST"); bcryptCostStr != "" {
		bcryptCost, err = strconv.Atoi(bcryptCostStr)
		if err != nil {
			return Config{}, errors.Wrap(err, "unable to convert bcrypt cost to int")
		}
	}
	jwtExpiryHours := 72
	if jwtExpiryStr := os.Getenv("JWT_EXPIRY_HOURS"); jwtExpiryStr != "" {
		jwtExpiryHours, err = strconv.Atoi(jwtExpiryStr)
		if err != nil {
			return Config{}, errors.Wrap(err, "unable to convert jwt expiry hours to int")
		}
	}
	urlProtocol := "http://"
	if !strings.EqualFold(env, "dev") {
		urlProtocol = "https://"
	}

	return Config{
		Port:            port,
		DatabaseURL:     databaseURL,
		SessionKey:      sessionKeyBytes,
		JwtSigningKey:   jwtSigningKeyBytes,
		Env:             env,
		SiteName:        siteName,
		SiteHost:        siteHost,
		SupportEmail:    supportEmail,
		NoReplyEmail:    noReplyEmail,
		EmailAPIKey:     emailAPIKey,
		SentryDSN:       sentryDSN,
		GeminiAPIKey:    geminiAPIKey,
		JobsPerPage:     10,
		MaxUploadSize:   5 * 1024 * 1024,
		BcryptCost:      bcryptCost,
		JwtExpiryHours:  jwtExpiryHours,
		URLProtocol:     urlProtocol,
		AllowedJobTypes: []string{"Full-time", "Part-time", "Contract", "Internship"},
	}, nil
}
