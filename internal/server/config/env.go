package config

import (
	"fmt"
	"os"
	"strconv"
)

// parseEnv overlays configuration from the environment.
//
// Recognized variables:
//
//	PORT          listening port, combined into the bind address (":<port>")
//	ADDRESS       full bind address; takes precedence over PORT
//	DATABASE_DSN  PostgreSQL DSN
//	SECRET_KEY    JWT signing secret
func parseEnv(config *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.EndpointAddrHTTP = fmt.Sprintf(":%d", port)
		}
	}
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
}
