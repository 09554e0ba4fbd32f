package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
	Worker   WorkerConfig   `mapstructure:"worker"`

	// Roster is a comma separated list; names may contain spaces.
	Roster string `mapstructure:"roster"`
}

type TelegramConfig struct {
	Token       string        `mapstructure:"token"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type WorkerConfig struct {
	QueueSize int `mapstructure:"queue_size"`
}

// LoadConfig reads .env (if any), then an optional YAML file, then
// TIMESHEET_* environment variables. An empty path searches ./config and the
// working directory for config.yaml.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.poll_timeout", "10s")
	v.SetDefault("store.driver", DriverCSV)
	v.SetDefault("store.path", "work_hours.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("worker.queue_size", 32)
	v.SetDefault("roster", "Kabiraj Lamichhane,Jenish Kandel,Goma Adhikari")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TIMESHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	if err := v.BindEnv("telegram.token", "TIMESHEET_TELEGRAM_TOKEN", "TELEGRAM_TOKEN"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverCSV, DriverSQLite:
	default:
		return fmt.Errorf("config: store.driver must be %q or %q, got %q", DriverCSV, DriverSQLite, c.Store.Driver)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("config: store.path is empty")
	}
	if c.Worker.QueueSize <= 0 {
		return fmt.Errorf("config: worker.queue_size must be positive, got %d", c.Worker.QueueSize)
	}
	return nil
}

// RosterNames splits Roster, dropping blanks and duplicates.
func (c *Config) RosterNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, n := range strings.Split(c.Roster, ",") {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}

// RequireToken is checked only by the bot command.
func (c *Config) RequireToken() error {
	if c.Telegram.Token == "" {
		return ErrNoToken{}
	}
	return nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN is not set in the environment"
}
