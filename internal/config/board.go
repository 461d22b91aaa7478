// Package config loads the postboard runtime configuration. Values come from
// built-in defaults, then an optional YAML file named by BOARD_CONFIG, then
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"postboard/internal/domain/entity"
	"postboard/internal/resilience/circuitbreaker"
	envcfg "postboard/pkg/config"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public placeholder API.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// ConfigPathEnv names the optional YAML configuration file.
const ConfigPathEnv = "BOARD_CONFIG"

// BoardConfig is the full runtime configuration.
type BoardConfig struct {
	API      APIConfig  `yaml:"api"`
	HTTP     HTTPConfig `yaml:"http"`
	Version  string     `yaml:"version"`
	LogLevel string     `yaml:"log_level"`
}

// APIConfig configures the placeholder API client.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// RateLimit is outbound requests per second; RateBurst the bucket size.
	RateLimit    float64              `yaml:"rate_limit"`
	RateBurst    int                  `yaml:"rate_burst"`
	MaxBodyBytes int64                `yaml:"max_body_bytes"`
	Breaker      CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// CircuitBreakerConfig mirrors circuitbreaker.Config for file and env loading.
type CircuitBreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold float64       `yaml:"failure_threshold"`
	MinRequests      uint32        `yaml:"min_requests"`
}

// HTTPConfig configures the board server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	MaxRequestBytes int64         `yaml:"max_request_bytes"`
	CSPEnabled      bool          `yaml:"csp_enabled"`
	CSPReportOnly   bool          `yaml:"csp_report_only"`
}

// Default returns the built-in configuration.
func Default() *BoardConfig {
	cb := circuitbreaker.UpstreamAPIConfig()
	return &BoardConfig{
		API: APIConfig{
			BaseURL:      DefaultBaseURL,
			Timeout:      10 * time.Second,
			RateLimit:    20,
			RateBurst:    10,
			MaxBodyBytes: 1 << 20,
			Breaker: CircuitBreakerConfig{
				MaxRequests:      cb.MaxRequests,
				Interval:         cb.Interval,
				Timeout:          cb.Timeout,
				FailureThreshold: cb.FailureThreshold,
				MinRequests:      cb.MinRequests,
			},
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  30 * time.Second,
			MaxRequestBytes: 1 << 16,
			CSPEnabled:      true,
		},
		Version:  "dev",
		LogLevel: "info",
	}
}

// LoadBoardConfig builds the configuration from defaults, the file named by
// BOARD_CONFIG and the environment, then validates it.
func LoadBoardConfig() (*BoardConfig, error) {
	return LoadBoardConfigFrom(os.Getenv(ConfigPathEnv))
}

// LoadBoardConfigFrom is LoadBoardConfig with an explicit file path. An empty
// path skips the file.
func LoadBoardConfigFrom(path string) (*BoardConfig, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			boardConfigMetrics.RecordLoadError("file")
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		boardConfigMetrics.RecordLoadError("validation")
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	boardConfigMetrics.RecordLoad()
	return cfg, nil
}

func (c *BoardConfig) mergeFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *BoardConfig) applyEnv() {
	c.API.BaseURL = envcfg.GetEnvString("API_BASE_URL", c.API.BaseURL)
	c.API.Timeout = envcfg.GetEnvDuration("API_TIMEOUT", c.API.Timeout)
	c.API.RateLimit = envcfg.GetEnvFloat("API_RATE_LIMIT", c.API.RateLimit)
	c.API.RateBurst = envcfg.GetEnvInt("API_RATE_BURST", c.API.RateBurst)
	c.API.MaxBodyBytes = envcfg.GetEnvInt64("API_MAX_BODY_BYTES", c.API.MaxBodyBytes)

	c.API.Breaker.Timeout = envcfg.GetEnvDuration("API_CB_TIMEOUT", c.API.Breaker.Timeout)
	c.API.Breaker.FailureThreshold = envcfg.GetEnvFloat("API_CB_FAILURE_THRESHOLD", c.API.Breaker.FailureThreshold)
	c.API.Breaker.MinRequests = uint32(envcfg.GetEnvInt("API_CB_MIN_REQUESTS", int(c.API.Breaker.MinRequests)))

	c.HTTP.Addr = envcfg.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.ShutdownTimeout = envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)
	c.HTTP.RequestTimeout = envcfg.GetEnvDuration("HTTP_REQUEST_TIMEOUT", c.HTTP.RequestTimeout)
	c.HTTP.MaxRequestBytes = envcfg.GetEnvInt64("HTTP_MAX_REQUEST_BYTES", c.HTTP.MaxRequestBytes)
	c.HTTP.CSPEnabled = envcfg.GetEnvBool("CSP_ENABLED", c.HTTP.CSPEnabled)
	c.HTTP.CSPReportOnly = envcfg.GetEnvBool("CSP_REPORT_ONLY", c.HTTP.CSPReportOnly)

	c.Version = envcfg.GetEnvString("VERSION", c.Version)
	c.LogLevel = envcfg.GetEnvString("LOG_LEVEL", c.LogLevel)
}

// Validate reports every invalid field, joined.
func (c *BoardConfig) Validate() error {
	var errs []error
	field := func(name string, err error) {
		if err != nil {
			boardConfigMetrics.RecordValidationError(name)
			errs = append(errs, &entity.ValidationError{Field: name, Message: err.Error()})
		}
	}

	field("api.base_url", entity.ValidateBaseURL(c.API.BaseURL))
	field("api.timeout", envcfg.ValidateDurationRange(c.API.Timeout, 100*time.Millisecond, 2*time.Minute))
	if c.API.RateLimit <= 0 {
		field("api.rate_limit", fmt.Errorf("must be positive, got %v", c.API.RateLimit))
	}
	field("api.rate_burst", envcfg.ValidateIntRange(c.API.RateBurst, 1, 1000))
	if c.API.MaxBodyBytes <= 0 {
		field("api.max_body_bytes", fmt.Errorf("must be positive, got %d", c.API.MaxBodyBytes))
	}
	field("api.circuit_breaker.timeout", envcfg.ValidatePositiveDuration(c.API.Breaker.Timeout))
	field("api.circuit_breaker.interval", envcfg.ValidateNonNegativeDuration(c.API.Breaker.Interval))
	field("api.circuit_breaker.failure_threshold", envcfg.ValidateRatio(c.API.Breaker.FailureThreshold))
	if c.API.Breaker.MaxRequests == 0 {
		field("api.circuit_breaker.max_requests", errors.New("must be at least 1"))
	}

	if c.HTTP.Addr == "" {
		field("http.addr", errors.New("cannot be empty"))
	}
	field("http.shutdown_timeout", envcfg.ValidatePositiveDuration(c.HTTP.ShutdownTimeout))
	field("http.request_timeout", envcfg.ValidatePositiveDuration(c.HTTP.RequestTimeout))
	if c.HTTP.MaxRequestBytes <= 0 {
		field("http.max_request_bytes", fmt.Errorf("must be positive, got %d", c.HTTP.MaxRequestBytes))
	}

	return errors.Join(errs...)
}

// BreakerConfig converts the breaker settings for circuitbreaker.New.
func (c APIConfig) BreakerConfig() circuitbreaker.Config {
	return circuitbreaker.Config{
		Name:             circuitbreaker.UpstreamAPIConfig().Name,
		MaxRequests:      c.Breaker.MaxRequests,
		Interval:         c.Breaker.Interval,
		Timeout:          c.Breaker.Timeout,
		FailureThreshold: c.Breaker.FailureThreshold,
		MinRequests:      c.Breaker.MinRequests,
	}
}
