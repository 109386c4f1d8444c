package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendSQLite    = "sqlite"
	BackendPostgres  = "postgres"
	BackendMySQL     = "mysql"
	BackendFirestore = "firestore"
)

type Config struct {
	Port                    int
	Backend                 string
	DatabaseURL             string
	FirebaseCredentialsFile string
	FirebaseProjectID       string
	AppID                   string
	SessionSecret           string
	AllowedOrigin           string
	Debug                   bool
	EnvFile                 string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("memberscorner", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Store backend (sqlite, postgres, mysql or firestore)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL for SQL backends")
	fs.StringVar(&cfg.FirebaseCredentialsFile, "firebase-credentials", "", "Firebase service account file")
	fs.StringVar(&cfg.FirebaseProjectID, "firebase-project", "", "Firebase project id")
	fs.StringVar(&cfg.AppID, "app-id", "", "Application id used to namespace documents")
	fs.StringVar(&cfg.AllowedOrigin, "origin", "", "Allowed CORS origin")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Load environment from this file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signature secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// An explicit env file must exist; the default .env is optional.
	// godotenv never overrides variables that are already set.
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.Backend == "" {
		cfg.Backend = os.Getenv("STORE_BACKEND")
		if cfg.Backend == "" {
			cfg.Backend = BackendSQLite
		}
	}

	switch cfg.Backend {
	case BackendSQLite, BackendPostgres, BackendMySQL:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case BackendFirestore:
		if cfg.FirebaseCredentialsFile == "" {
			cfg.FirebaseCredentialsFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")
		}
		if cfg.FirebaseProjectID == "" {
			cfg.FirebaseProjectID = os.Getenv("FIREBASE_PROJECT_ID")
		}
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	if cfg.AppID == "" {
		cfg.AppID = os.Getenv("APP_ID")
		if cfg.AppID == "" {
			cfg.AppID = "default-app-id"
		}
	}

	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = os.Getenv("ALLOWED_ORIGIN")
		if cfg.AllowedOrigin == "" {
			cfg.AllowedOrigin = "*"
		}
	}

	if !cfg.Debug {
		if v := os.Getenv("DEBUG"); v != "" {
			debug, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid DEBUG env variable")
			}
			cfg.Debug = debug
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	return cfg, nil
}
