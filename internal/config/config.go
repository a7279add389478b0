package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message;
// tunables fall back to the documented defaults.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	BcryptCost       int    // bcrypt cost for password hashing
	SSOPublicKeyPath string // PEM file with the SSO issuer's public key
	SSORedirectPath  string // where a successful SSO login lands
	SessionTTLMin    int    // admin session time-to-live in minutes
	PerPage          int    // default page size for list endpoints
	MaxPerPage       int    // upper bound a client may request
}

// Load reads configuration values from environment variables and
// returns a Config.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		BcryptCost:       mustInt("BCRYPT_COST"),
		SSOPublicKeyPath: getenv("SSO_PUBLIC_KEY_PATH", "storage/keys/advenue.pem"),
		SSORedirectPath:  getenv("SSO_REDIRECT_PATH", "/dashboard"),
		SessionTTLMin:    atoi(getenv("SESSION_TTL_MIN", "120")),
		PerPage:          atoi(getenv("PAGINATION_PER_PAGE", "15")),
		MaxPerPage:       atoi(getenv("PAGINATION_MAX_PER_PAGE", "100")),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
