package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Database struct {
	Path string `mapstructure:"path"`
}

type Report struct {
	OutputDir string `mapstructure:"output_dir"`
}

type Email struct {
	Enabled   bool   `mapstructure:"enabled"`
	Sender    string `mapstructure:"sender"`
	Recipient string `mapstructure:"recipient"`
	SMTPHost  string `mapstructure:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port"`
	Profile   string `mapstructure:"profile"`
}

// Config is the fixed configuration object the pipeline runs with.
// It is loaded once at start; nothing mutates it afterwards.
type Config struct {
	Database Database `mapstructure:"database"`
	Report   Report   `mapstructure:"report"`
	Email    Email    `mapstructure:"email"`
}

// Load reads the ini config file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	v.SetDefault("report.output_dir", ".")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.profile", "default")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Email.Enabled {
		switch {
		case c.Email.Sender == "":
			return fmt.Errorf("email.sender is required when delivery is enabled")
		case c.Email.Recipient == "":
			return fmt.Errorf("email.recipient is required when delivery is enabled")
		case c.Email.SMTPHost == "":
			return fmt.Errorf("email.smtp_host is required when delivery is enabled")
		}
	}
	return nil
}
