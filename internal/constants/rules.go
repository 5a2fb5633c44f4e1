package constants

import (
	"strings"

	"github.com/kerimovok/go-pkg-utils/config"
	"github.com/kerimovok/go-pkg-utils/validator"
)

func notEmpty(v string) bool {
	return v != ""
}

func oneOf(values ...string) func(string) bool {
	return func(v string) bool {
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

func optionalURLHost(v string) bool {
	return v == "" || !strings.Contains(v, "://")
}

// EnvValidationRules are checked once at startup, after .env is loaded
var EnvValidationRules = []validator.ValidationRule{
	// HTTP
	{
		Variable: "PORT",
		Default:  "5000",
		Rule:     config.IsValidPort,
		Message:  "PORT must be a valid port number",
	},
	{
		Variable: "GO_ENV",
		Default:  "development",
		Rule:     oneOf("development", "production"),
		Message:  "GO_ENV must be either 'development' or 'production'",
	},

	// PostgreSQL
	{
		Variable: "DB_HOST",
		Rule:     notEmpty,
		Message:  "DB_HOST is required",
	},
	{
		Variable: "DB_PORT",
		Default:  "5432",
		Rule:     config.IsValidPort,
		Message:  "DB_PORT must be a valid port number",
	},
	{
		Variable: "DB_USER",
		Rule:     notEmpty,
		Message:  "DB_USER is required",
	},
	{
		Variable: "DB_NAME",
		Default:  "tuneful",
		Rule:     notEmpty,
		Message:  "DB_NAME is required",
	},

	// Upload storage
	{
		Variable: "STORAGE_DRIVER",
		Default:  "local",
		Rule:     oneOf("local", "minio"),
		Message:  "STORAGE_DRIVER must be either 'local' or 'minio'",
	},
	{
		Variable: "MINIO_ENDPOINT",
		Rule:     optionalURLHost,
		Message:  "MINIO_ENDPOINT must be host:port without a scheme",
	},
	{
		Variable: "LOG_LEVEL",
		Rule:     oneOf("", "debug", "info", "warn", "error"),
		Message:  "LOG_LEVEL must be one of debug, info, warn, error",
	},
}
