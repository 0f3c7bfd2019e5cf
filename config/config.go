package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Provider ProviderConfig
	Relay    RelayConfig

	ListenPort int

	LogLevel  log.Level
	LogFormat LogFormat
}

type ProviderConfig struct {
	ApiURL     url.URL
	Host       string
	ApiKey     string
	SecretPath string
	Timeout    time.Duration
}

type RelayConfig struct {
	MediaTimeout   time.Duration
	FilenamePrefix string
}

type LogFormat string

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	DefaultProviderAPI     = "https://instagram-scraper-api3.p.rapidapi.com"
	DefaultProviderTimeout = 15 * time.Second
	DefaultMediaTimeout    = 5 * time.Minute
	DefaultFilenamePrefix  = "instagram_video"
	DefaultListenPort      = 8080
)

type EnvfileKey string

const (
	// Base URL of the media info provider, without the "/media_info" path
	EnvfileKeyProviderAPI = "PROVIDER_API"
	// Value for the X-RapidAPI-Host header; defaults to the host of PROVIDER_API
	EnvfileKeyProviderHost = "PROVIDER_HOST"
	// API key for the provider. Takes precedence over PROVIDER_SECRETS_PATH
	EnvfileKeyProviderAPIKey = "PROVIDER_API_KEY"
	// AWS Secrets Manager path where provider secrets can be found
	EnvfileKeyProviderSecretPath = "PROVIDER_SECRETS_PATH"
	// Timeout for a single media info lookup, in seconds
	EnvfileKeyProviderTimeout = "PROVIDER_TIMEOUT"

	// Timeout for fetching and relaying one video, in seconds
	EnvfileKeyMediaTimeout = "MEDIA_TIMEOUT"
	// Prefix of the suggested download filename
	EnvfileKeyFilenamePrefix = "FILENAME_PREFIX"

	// Port the HTTP server listens on
	EnvfileKeyListenPort = "LISTEN_PORT"

	// Log level (e.g. "debug", "info", "warn", "error")
	EnvfileKeyLogLevel = "LOG_LEVEL"
	// Log output format (e.g. "text", "json")
	EnvfileKeyLogFormat = "LOG_FORMAT"
)

func FromEnvfile() Config {
	cfg, err := Load(".")
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}
	return cfg
}

// Load reads configuration from a .env file in dir (if there is one) with
// environment variables taking precedence.
func Load(dir string) (Config, error) {
	viper.Reset()
	viper.AddConfigPath(dir)
	viper.SetConfigName(".env")
	viper.SetConfigType("dotenv")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
		log.Debug("no .env file found, using environment only")
	}

	rawProviderURL := getConfigString(EnvfileKeyProviderAPI)
	if rawProviderURL == "" {
		rawProviderURL = DefaultProviderAPI
	}
	providerURL, err := url.Parse(rawProviderURL)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing provider URL: %w", err)
	}
	if !providerURL.IsAbs() || providerURL.Host == "" {
		return Config{}, fmt.Errorf("provider URL must be absolute: %s", rawProviderURL)
	}

	apiKey := getConfigString(EnvfileKeyProviderAPIKey)
	secretPath := getConfigString(EnvfileKeyProviderSecretPath)
	if apiKey == "" && secretPath == "" {
		return Config{}, errors.New("provider credentials not configured")
	}

	providerTimeout := getConfigSeconds(EnvfileKeyProviderTimeout)
	if providerTimeout == 0 {
		providerTimeout = DefaultProviderTimeout
	}
	mediaTimeout := getConfigSeconds(EnvfileKeyMediaTimeout)
	if mediaTimeout == 0 {
		mediaTimeout = DefaultMediaTimeout
	}

	filenamePrefix := getConfigString(EnvfileKeyFilenamePrefix)
	if filenamePrefix == "" {
		filenamePrefix = DefaultFilenamePrefix
	}

	listenPort := getConfigInt(EnvfileKeyListenPort)
	if listenPort == 0 {
		listenPort = DefaultListenPort
	}

	logLevel, err := log.ParseLevel(getConfigString(EnvfileKeyLogLevel))
	if err != nil {
		// Default to info level but log a warning
		log.Warnf("unable to parse log level: %v", err)
		logLevel = log.InfoLevel
	}

	logFormat, err := parseLogFormat(getConfigString(EnvfileKeyLogFormat))
	if err != nil {
		// Default to text formatter but log a warning
		log.Warnf("unable to parse log format: %v", err)
		logFormat = LogFormatText
	}

	return Config{
		Provider: ProviderConfig{
			ApiURL:     *providerURL,
			Host:       getConfigString(EnvfileKeyProviderHost),
			ApiKey:     apiKey,
			SecretPath: secretPath,
			Timeout:    providerTimeout,
		},
		Relay: RelayConfig{
			MediaTimeout:   mediaTimeout,
			FilenamePrefix: filenamePrefix,
		},
		ListenPort: listenPort,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
	}, nil
}

// ConfigureLogging applies the configured level and format to the global logger.
func ConfigureLogging(cfg Config) {
	log.SetLevel(cfg.LogLevel)
	switch cfg.LogFormat {
	case LogFormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}
}

func parseLogFormat(raw string) (LogFormat, error) {
	switch strings.ToLower(raw) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatText:
		return LogFormatText, nil
	default:
		return "", fmt.Errorf("unidentified log format: %s", raw)
	}
}

// Gets a config value as a string from env vars or a .env file
func getConfigString(key string) string {
	value := os.Getenv(key)
	if value == "" {
		value = viper.GetString(key)
	}
	return value
}

// Gets a config value as an int from env vars or a .env file
func getConfigInt(key string) int {
	envVarValue := os.Getenv(key)
	if envVarValue == "" {
		return viper.GetInt(key)
	}
	value, err := strconv.Atoi(envVarValue)
	if err != nil {
		return 0
	}
	return value
}

func getConfigSeconds(key string) time.Duration {
	return time.Duration(getConfigInt(key)) * time.Second
}
