package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ServiceBackend  = "backend"
	ServiceFrontend = "frontend"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	DefaultBackendPort  = 8080
	DefaultFrontendPort = 3000
	DefaultUpstreamURL  = "http://backend-service:80"
	DefaultStaticDir    = "./public"
)

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// UpstreamConfig names the backend service the frontend relays to.
type UpstreamConfig struct {
	URL string `mapstructure:"url"`
}

type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

type HealthCheckConfig struct {
	Interval string `mapstructure:"interval"`
}

type RelayConfig struct {
	UniformErrors bool `mapstructure:"uniform_errors"`
}

type Config struct {
	Service     string            `mapstructure:"-"`
	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Upstream    UpstreamConfig    `mapstructure:"upstream"`
	Static      StaticConfig      `mapstructure:"static"`
	HealthCheck HealthCheckConfig `mapstructure:"health_check"`
	Relay       RelayConfig       `mapstructure:"relay"`
}

// Load reads the configuration for the named service (ServiceBackend or
// ServiceFrontend).
func Load(service string) (*Config, error) {
	if service != ServiceBackend && service != ServiceFrontend {
		return nil, fmt.Errorf("unknown service %q", service)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env file", slog.String("error", err.Error()))
	}

	v := viper.New()
	setDefaults(v, service)

	v.SetConfigName(service)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindEnv(v, service); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables",
			slog.String("service", service))
	} else {
		slog.Info("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	cfg := Config{Service: service}
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("logging.level", LogLevelInfo)

	if service == ServiceBackend {
		v.SetDefault("server.port", DefaultBackendPort)
		return
	}

	v.SetDefault("server.port", DefaultFrontendPort)
	v.SetDefault("upstream.url", DefaultUpstreamURL)
	v.SetDefault("static.dir", DefaultStaticDir)
	v.SetDefault("health_check.interval", "30s")
	v.SetDefault("relay.uniform_errors", false)
}

// bindEnv maps the variable names the services were historically deployed
// with onto config keys. The first name listed wins.
func bindEnv(v *viper.Viper, service string) error {
	bindings := [][]string{
		{"server.port", "PORT", "SERVER_PORT"},
		{"server.environment", "NODE_ENV", "ENVIRONMENT", "SERVER_ENVIRONMENT"},
	}
	if service == ServiceFrontend {
		bindings = append(bindings,
			[]string{"upstream.url", "BACKEND_URL", "UPSTREAM_URL"},
			[]string{"static.dir", "STATIC_DIR"},
		)
	}

	for _, b := range bindings {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("bind env for %s: %w", b[0], err)
		}
	}

	return nil
}

// Address is the listen address for the service.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// HealthCheckInterval returns the upstream probe interval. Zero disables probing.
func (c *Config) HealthCheckInterval() (time.Duration, error) {
	if c.HealthCheck.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(c.HealthCheck.Interval)
}

func (c *Config) IsFrontend() bool {
	return c.Service == ServiceFrontend
}

func (c *Config) Validate() error {
	frontend := c.IsFrontend()

	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Port,
						validation.Required,
						validation.Min(1),
						validation.Max(65535),
					),
					validation.Field(&sc.Environment,
						validation.Required,
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Upstream,
			validation.When(frontend, validation.By(func(value interface{}) error {
				uc, ok := value.(UpstreamConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an UpstreamConfig")
				}
				return validation.ValidateStruct(&uc,
					validation.Field(&uc.URL, validation.By(validateServerURL)),
				)
			})),
		),
		validation.Field(&c.Static,
			validation.When(frontend, validation.By(func(value interface{}) error {
				sc, ok := value.(StaticConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a StaticConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Dir, validation.Required),
				)
			})),
		),
		validation.Field(&c.HealthCheck,
			validation.When(frontend, validation.By(func(value interface{}) error {
				hc, ok := value.(HealthCheckConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a HealthCheckConfig")
				}
				return validation.ValidateStruct(&hc,
					validation.Field(&hc.Interval, validation.By(validateDuration)),
				)
			})),
		),
	)
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if durationStr == "" {
		return nil
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	if d < 0 {
		return validation.NewError("validation_negative_duration", "must not be negative")
	}

	return nil
}

func validateServerURL(value interface{}) error {
	serverURL, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if serverURL == "" {
		return validation.NewError("validation_empty_url", "server URL cannot be empty")
	}

	parsedURL, err := url.Parse(serverURL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}
