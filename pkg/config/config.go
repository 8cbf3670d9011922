package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"slotbook/pkg/logger"
	"slotbook/pkg/model"
)

type Config struct {
	Port     string
	LogLevel string

	OrderServiceURL string

	// MongoURI is optional; when empty the orders service keeps its records
	// in memory.
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Roster []model.User

	SlotScanHorizonHours int
	OrderEventsTopic     string

	HTTPClientTimeout time.Duration
	RequestTimeout    time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		OrderServiceURL: getEnvStr(EnvOrderServiceURL, DefaultOrderServiceURL),

		MongoURI:          getEnvStr(EnvMongoURI, ""),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		SlotScanHorizonHours: getEnvNum(EnvSlotScanHorizonHours, DefaultSlotScanHorizonHours),
		OrderEventsTopic:     getEnvStr(EnvOrderEventsTopic, DefaultOrderEventsTopic),

		HTTPClientTimeout: getEnvDuration(EnvHTTPClientTimeout, DefaultHTTPClientTimeout),
		RequestTimeout:    getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		ReadTimeout:       getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:      getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:       getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout:   getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})

	rosterJSON := getEnvStr(EnvRoster, DefaultRoster)
	if err := json.Unmarshal([]byte(rosterJSON), &cfg.Roster); err != nil {
		cfg.Log.Fatal("Failed to parse roster", "error", err)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.OrderServiceURL == "" {
		errors = append(errors, "OrderServiceURL cannot be empty")
	}

	if cfg.MongoURI != "" && !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if len(cfg.Roster) == 0 {
		errors = append(errors, "Roster must contain at least one user")
	}
	seen := make(map[string]bool, len(cfg.Roster))
	for i, user := range cfg.Roster {
		if user.ID == "" {
			errors = append(errors, fmt.Sprintf("Roster entry %d has an empty id", i))
			continue
		}
		if seen[user.ID] {
			errors = append(errors, fmt.Sprintf("Roster contains duplicate user id: %s", user.ID))
		}
		seen[user.ID] = true
	}

	if cfg.SlotScanHorizonHours <= 0 {
		errors = append(errors, fmt.Sprintf("SlotScanHorizonHours must be positive, got: %d", cfg.SlotScanHorizonHours))
	}
	if cfg.OrderEventsTopic == "" {
		errors = append(errors, "OrderEventsTopic cannot be empty")
	}

	if cfg.HTTPClientTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("HTTPClientTimeout must be positive, got: %s", cfg.HTTPClientTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"order_service_url", cfg.OrderServiceURL,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"roster_size", len(cfg.Roster),
		"slot_scan_horizon_hours", cfg.SlotScanHorizonHours,
		"order_events_topic", cfg.OrderEventsTopic,
		"http_client_timeout", cfg.HTTPClientTimeout,
		"request_timeout", cfg.RequestTimeout,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
