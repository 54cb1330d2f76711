package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "REVENUE_ATLAS"

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Report   ReportConfig   `mapstructure:"report"`
	LogLevel string         `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path" validate:"required"`
	Threads int    `mapstructure:"threads" validate:"gte=1,lte=64"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            string `mapstructure:"port" validate:"required,numeric"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=1"` // seconds
}

type ReportConfig struct {
	Locale      string `mapstructure:"locale" validate:"required"`
	Currency    string `mapstructure:"currency" validate:"required,len=3"`
	Period      string `mapstructure:"period" validate:"required"`
	Granularity string `mapstructure:"granularity" validate:"required"`
	Horizon     int    `mapstructure:"horizon" validate:"gte=0,lte=36"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("database.path", "revenue-atlas.db")
	v.SetDefault("database.threads", 4)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10)
	v.SetDefault("report.locale", "en-US")
	v.SetDefault("report.currency", "USD")
	v.SetDefault("report.period", "monthly")
	v.SetDefault("report.granularity", "month")
	v.SetDefault("report.horizon", 3)
}

// LoadConfig reads defaults, then the optional file at path, then
// REVENUE_ATLAS_* environment variables (REVENUE_ATLAS_SERVER_PORT, ...).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
