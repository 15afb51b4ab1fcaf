package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	defaultRunAddress      = ":8080"
	defaultMigrationsPath  = "migrations"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Auth   Auth
	Logger Logger
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type Auth struct {
	// AdminTokenHash bcrypt-хэш токена администратора, пустой - без авторизации
	AdminTokenHash string `env:"ADMIN_TOKEN_HASH"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MustLoad загружает конфигурацию сервера из .env и окружения
func MustLoad() *Config {
	cfg, err := Load(".env")
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает конфигурацию; отсутствие envPath не считается ошибкой
func Load(envPath string) (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("RUN_ADDRESS", defaultRunAddress)
	v.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())

	shutdown, err := parseTimeout(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("shutdown_timeout: %w", err)
	}

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		DB: DB{
			DatabaseURI: v.GetString("DATABASE_URI"),
			Migrations:  v.GetString("MIGRATIONS_PATH"),
		},
		Server: Server{
			RunAddress:      v.GetString("RUN_ADDRESS"),
			ShutdownTimeout: shutdown,
		},
		Auth:   Auth{AdminTokenHash: v.GetString("ADMIN_TOKEN_HASH")},
		Logger: Logger{LogLevel: v.GetString("LOG_LEVEL")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DB.DatabaseURI == "" {
		return fmt.Errorf("database_uri не может быть пустым")
	}
	if c.Server.RunAddress == "" {
		return fmt.Errorf("run_address не может быть пустым")
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("неизвестное окружение: %q", c.Env)
	}
	return nil
}

// parseTimeout принимает длительность с единицей ("10s", "1m") или целое число секунд
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("должен быть положительным: %q", raw)
		}
		return time.Duration(n) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("должен быть положительным: %q", raw)
	}
	return d, nil
}

// Driver определяет драйвер БД по схеме DATABASE_URI
func (c *Config) Driver() string {
	if strings.HasPrefix(c.DB.DatabaseURI, DriverSQLite+"://") {
		return DriverSQLite
	}
	return DriverPostgres
}

// SQLitePath возвращает путь к файлу SQLite без схемы
func (c *Config) SQLitePath() string {
	return strings.TrimPrefix(c.DB.DatabaseURI, DriverSQLite+"://")
}
