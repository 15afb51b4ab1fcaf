package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "info"
	defaultEnv           = "local"
	defaultConfigDir     = ".neovideo"
	defaultConfigName    = "config.yaml"
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	BasePath       string        `mapstructure:"base_path"`
	Token          string        `mapstructure:"admin_token"`
	RequestTimeout time.Duration `mapstructure:"-"`
	LogLevel       string        `mapstructure:"log_level"`
	// ConfigFile файл, из которого реально прочитана конфигурация (пусто, если не было)
	ConfigFile string `mapstructure:"-"`
}

// Load читает .env, окружение и YAML-файл конфигурации.
// Пустой configFile означает ~/.neovideo/config.yaml, если он существует.
func Load(configFile string) (*Config, error) {
	// .env необязателен
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("ENABLE_TLS", false)
	v.SetDefault("BASE_PATH", "")
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 0)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)

	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigFile()
	}

	cfg := &Config{}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		err := v.ReadInConfig()
		switch {
		case err == nil:
			cfg.ConfigFile = configFile
		case !explicit && errors.Is(err, os.ErrNotExist):
			// файла по умолчанию может не быть
		default:
			return nil, fmt.Errorf("ошибка чтения %s: %w", configFile, err)
		}
	}

	cfg.Env = v.GetString("APP_ENV")
	cfg.ServerAddress = v.GetString("SERVER_ADDRESS")
	cfg.EnableTLS = v.GetBool("ENABLE_TLS")
	cfg.BasePath = v.GetString("BASE_PATH")
	cfg.Token = v.GetString("ADMIN_TOKEN")
	cfg.RequestTimeout = time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second
	cfg.LogLevel = v.GetString("LOG_LEVEL")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfigFile путь ~/.neovideo/config.yaml; пусто, если нет домашней директории
func DefaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultConfigDir, defaultConfigName)
}

func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout_seconds не может быть отрицательным")
	}
	return nil
}

// BaseURL собирает адрес API: схема, хост и BASE_PATH без завершающего слэша
func (c *Config) BaseURL() string {
	addr := strings.TrimRight(c.ServerAddress, "/")
	if !strings.Contains(addr, "://") {
		scheme := "http://"
		if c.EnableTLS {
			scheme = "https://"
		}
		addr = scheme + addr
	}

	base := strings.Trim(c.BasePath, "/")
	if base == "" {
		return addr
	}
	return addr + "/" + base
}
