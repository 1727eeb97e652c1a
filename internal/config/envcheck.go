package config

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

// EnvRule describes one environment variable the service reads
type EnvRule struct {
	Name        string
	Required    bool
	Description string
	// Validate returns a non-empty message when value is unacceptable
	Validate func(value string, lookup LookupFunc) string
}

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// EnvValidation is the outcome reported by /api/health
type EnvValidation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

func httpURL(value string, _ LookupFunc) string {
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return "must start with http:// or https://"
	}
	if !govalidator.IsURL(value) {
		return "must be a valid URL"
	}
	return ""
}

func emailAddress(value string, _ LookupFunc) string {
	if !govalidator.IsEmail(value) {
		return "must be a valid email address"
	}
	return ""
}

// EnvRules lists every variable checked at startup and by the health endpoint
var EnvRules = []EnvRule{
	{
		Name:        "DATABASE_URL",
		Required:    true,
		Description: "PostgreSQL connection string",
		Validate: func(v string, _ LookupFunc) string {
			if !strings.HasPrefix(v, "postgres://") && !strings.HasPrefix(v, "postgresql://") {
				return "must be a postgres:// connection URL"
			}
			return ""
		},
	},
	{
		Name:        "JWT_SECRET",
		Required:    true,
		Description: "Secret used to sign session tokens",
		Validate: func(v string, _ LookupFunc) string {
			if len(v) < 32 {
				return "must be at least 32 characters"
			}
			return ""
		},
	},
	{
		Name:        "PAYSTACK_SECRET_KEY",
		Required:    true,
		Description: "Paystack secret key (server-side only)",
		Validate: func(v string, _ LookupFunc) string {
			if !strings.HasPrefix(v, "sk_") {
				return `Paystack secret key should start with "sk_"`
			}
			return ""
		},
	},
	{
		Name:        "PAYSTACK_PUBLIC_KEY",
		Description: "Paystack public key",
		Validate: func(v string, _ LookupFunc) string {
			if !strings.HasPrefix(v, "pk_") {
				return `Paystack public key should start with "pk_"`
			}
			return ""
		},
	},
	{Name: "APP_URL", Required: true, Description: "Application URL for callbacks", Validate: httpURL},
	{Name: "STORAGE_ENDPOINT", Required: true, Description: "S3-compatible storage endpoint", Validate: httpURL},
	{Name: "STORAGE_ACCESS_KEY", Required: true, Description: "Storage access key id"},
	{Name: "STORAGE_SECRET_KEY", Required: true, Description: "Storage secret key"},
	{Name: "STORAGE_PUBLIC_URL", Required: true, Description: "Base URL documents are served from", Validate: httpURL},
	{
		Name:        "REDIS_URL",
		Description: "Redis connection URL (rate limiting, one-time tokens)",
		Validate: func(v string, _ LookupFunc) string {
			if !strings.HasPrefix(v, "redis://") && !strings.HasPrefix(v, "rediss://") {
				return "must be a redis:// URL"
			}
			return ""
		},
	},
	{
		Name:        "EMAIL_SERVICE",
		Description: "Email transport (console, smtp); defaults to console",
		Validate: func(v string, lookup LookupFunc) string {
			switch v {
			case "console":
				return ""
			case "smtp":
				if host, ok := lookup("SMTP_HOST"); !ok || strings.TrimSpace(host) == "" {
					return "SMTP_HOST is required when EMAIL_SERVICE=smtp"
				}
				return ""
			}
			return "must be console or smtp"
		},
	},
	{Name: "EMAIL_FROM", Description: "Email sender address (optional, has default)", Validate: emailAddress},
	{Name: "ADMIN_EMAIL", Description: "Admin notification addresses, comma separated"},
	{Name: "CONTACT_EMAIL", Description: "Public contact address", Validate: emailAddress},
	{
		Name:        "GOOGLE_CLIENT_ID",
		Description: "Google OAuth client id; Google sign-in is disabled when unset",
		Validate: func(_ string, lookup LookupFunc) string {
			if secret, ok := lookup("GOOGLE_CLIENT_SECRET"); !ok || strings.TrimSpace(secret) == "" {
				return "GOOGLE_CLIENT_SECRET is required when GOOGLE_CLIENT_ID is set"
			}
			return ""
		},
	},
	{
		Name:        "RATE_LIMIT_STORE",
		Description: "Rate limit backend (redis, memory); defaults to redis",
		Validate: func(v string, _ LookupFunc) string {
			if v != "redis" && v != "memory" {
				return "must be redis or memory"
			}
			return ""
		},
	},
}

// ValidateEnv checks EnvRules against lookup
func ValidateEnv(lookup LookupFunc) EnvValidation {
	result := EnvValidation{Errors: []string{}}

	for _, rule := range EnvRules {
		value, _ := lookup(rule.Name)
		value = strings.TrimSpace(value)

		if value == "" {
			if rule.Required {
				result.Errors = append(result.Errors, fmt.Sprintf("%s is required but not set. %s", rule.Name, rule.Description))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s is not set. %s", rule.Name, rule.Description))
			}
			continue
		}

		if rule.Validate != nil {
			if msg := rule.Validate(value, lookup); msg != "" {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", rule.Name, msg))
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}
