package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variable names. APIKeyEnv is fixed and case-sensitive.
const (
	APIKeyEnv     = "VITE_GEMINI_API_KEY"
	BaseURLEnv    = "GEMINI_PROBE_BASE_URL"
	ProxyEnv      = "GEMINI_PROBE_PROXY"
	StrictExitEnv = "GEMINI_PROBE_STRICT_EXIT"
	LogLevelEnv   = "GEMINI_PROBE_LOG_LEVEL"
)

// DefaultEnvFile is loaded from the working directory when present.
const DefaultEnvFile = ".env"

// MissingCredentialMessage is printed when APIKeyEnv is unset or empty.
const MissingCredentialMessage = "Please set the " + APIKeyEnv + " environment variable."

// ErrMissingCredential means APIKeyEnv is unset or blank. It is a
// user-correctable condition, not a fault.
var ErrMissingCredential = errors.New(APIKeyEnv + " is not set")

// Config holds the configuration for gemini-probe
type Config struct {
	APIKey     string       // Gemini API key
	BaseURL    string       // API endpoint override, empty for the SDK default
	ProxyURL   string       // http, https or socks5 proxy, empty for none
	StrictExit bool         // exit non-zero when every attempt fails
	LogLevel   logrus.Level // diagnostics level
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "invalid configuration for '" + e.Field + "': " + e.Message
}

type loadOptions struct {
	envFile  string
	explicit bool
}

// LoadOption configures Load
type LoadOption func(*loadOptions)

// WithEnvFile loads the given dotenv file instead of DefaultEnvFile.
// Unlike the default file, it must exist.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) {
		if path == "" {
			return
		}
		o.envFile = path
		o.explicit = true
	}
}

// Load reads configuration from environment variables after seeding
// them from a dotenv file. Variables already present in the environment
// win over the file.
func Load(opts ...LoadOption) (*Config, error) {
	o := &loadOptions{envFile: DefaultEnvFile}
	for _, opt := range opts {
		opt(o)
	}

	if err := loadEnvFile(o); err != nil {
		return nil, err
	}

	// API key - required
	apiKey := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	// Base URL - optional
	baseURL := strings.TrimSpace(os.Getenv(BaseURLEnv))
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, &ConfigError{
				Field:   "base_url",
				Message: "must be an absolute URL (e.g., https://generativelanguage.googleapis.com/)",
			}
		}
	}

	// Proxy - optional
	proxyURL := strings.TrimSpace(os.Getenv(ProxyEnv))
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil || u.Host == "" {
			return nil, &ConfigError{
				Field:   "proxy",
				Message: "must be a URL (e.g., http://127.0.0.1:8080, socks5://127.0.0.1:1080)",
			}
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, &ConfigError{
				Field:   "proxy",
				Message: fmt.Sprintf("unsupported scheme %q, supported schemes are http, https, socks5", u.Scheme),
			}
		}
	}

	// Strict exit - optional, defaults to false
	strictExit := false
	if v := strings.TrimSpace(os.Getenv(StrictExitEnv)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &ConfigError{
				Field:   "strict_exit",
				Message: "must be a boolean (e.g., true, false, 1, 0)",
			}
		}
		strictExit = b
	}

	// Log level - optional, defaults to warn
	logLevel := logrus.WarnLevel
	if v := strings.TrimSpace(os.Getenv(LogLevelEnv)); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, &ConfigError{
				Field:   "log_level",
				Message: "must be one of panic, fatal, error, warn, info, debug, trace",
			}
		}
		logLevel = lvl
	}

	return &Config{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		ProxyURL:   proxyURL,
		StrictExit: strictExit,
		LogLevel:   logLevel,
	}, nil
}

func loadEnvFile(o *loadOptions) error {
	if _, err := os.Stat(o.envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) && !o.explicit {
			return nil
		}
		return fmt.Errorf("failed to read env file %s: %w", o.envFile, err)
	}
	if err := godotenv.Load(o.envFile); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", o.envFile, err)
	}
	logrus.Debugf("Loaded environment from %s", o.envFile)
	return nil
}
