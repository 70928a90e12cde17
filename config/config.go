package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/mindwell-clinic/clinic-api/internal/model"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type RuleConfig struct {
	Weekdays        []int  `mapstructure:"weekdays"`
	StartTime       string `mapstructure:"start_time"`
	EndTime         string `mapstructure:"end_time"`
	IntervalMinutes int    `mapstructure:"interval_minutes"`
}

type AvailabilityConfig struct {
	Remote   RuleConfig `mapstructure:"remote"`
	InPerson RuleConfig `mapstructure:"in_person"`
}

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Admin        AdminConfig        `mapstructure:"admin"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Availability AvailabilityConfig `mapstructure:"availability"`
	LogPretty    bool               `mapstructure:"log_pretty"`
}

// LoadConfig reads config.yaml (optional) and applies CLINIC_* environment
// overrides on top.
func LoadConfig() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("clinic", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("jwt.secret", "dev-secret-change-me")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("admin.email", "admin@mindwell.clinic")
	viper.SetDefault("admin.password", "admin12345")
	viper.SetDefault("rate_limit.requests_per_second", 20.0)
	viper.SetDefault("rate_limit.burst", 40)
	viper.SetDefault("log_pretty", true)

	viper.SetDefault("availability.remote.weekdays", []int{1, 2, 3, 4, 5})
	viper.SetDefault("availability.remote.start_time", "09:00")
	viper.SetDefault("availability.remote.end_time", "18:00")
	viper.SetDefault("availability.remote.interval_minutes", 60)

	viper.SetDefault("availability.in_person.weekdays", []int{1, 3, 5})
	viper.SetDefault("availability.in_person.start_time", "10:00")
	viper.SetDefault("availability.in_person.end_time", "17:00")
	viper.SetDefault("availability.in_person.interval_minutes", 60)
}

// Rules converts the configured windows into the model the availability
// engine reads.
func (c AvailabilityConfig) Rules() model.AvailabilityRules {
	return model.AvailabilityRules{
		Remote:   c.Remote.rule(),
		InPerson: c.InPerson.rule(),
	}
}

func (r RuleConfig) rule() model.AvailabilityRule {
	weekdays := make([]time.Weekday, 0, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}
	return model.AvailabilityRule{
		Weekdays:        weekdays,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		IntervalMinutes: r.IntervalMinutes,
	}
}
