package config

import (
	"fmt"
	"log"
	"os"
	"time"

	envconfig "github.com/JeremyLoy/config"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Cfg *AppConfig

// AppConfig holds all environment variables.
type AppConfig struct {
	Port          string `config:"PORT"`
	DBHost        string `config:"DB_HOST"`
	DBPort        string `config:"DB_PORT"`
	DBUser        string `config:"DB_USER"`
	DBName        string `config:"DB_NAME"`
	DBPassword    string `config:"DB_PASSWORD"`
	DBSSLMode     string `config:"DB_SSLMODE"`
	JWTSecret     string `config:"JWT_SECRET_KEY"`
	JWTTTLHours   int    `config:"JWT_TTL_HOURS"`
	FrontendURL   string `config:"FRONTEND_URL"`
	AdminUsername string `config:"ADMIN_USERNAME"`
	AdminPassword string `config:"ADMIN_PASSWORD"`
	MaxIterations int    `config:"MAX_ITERATIONS"`
	LogLevel      string `config:"LOG_LEVEL"`
}

// Defaults returns the configuration used for any variable that is not set.
func Defaults() AppConfig {
	return AppConfig{
		Port:          "8080",
		DBSSLMode:     "disable",
		JWTTTLHours:   24,
		MaxIterations: 1_000_000,
		LogLevel:      "info",
	}
}

// Load reads environment variables (and .env if present) over Defaults.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := envconfig.FromEnv().To(&cfg); err != nil {
		return nil, eris.Wrap(err, "decoding environment")
	}
	if cfg.MaxIterations <= 0 {
		return nil, eris.Errorf("MAX_ITERATIONS must be > 0, got %d", cfg.MaxIterations)
	}
	if cfg.JWTTTLHours <= 0 {
		return nil, eris.Errorf("JWT_TTL_HOURS must be > 0, got %d", cfg.JWTTTLHours)
	}
	Cfg = &cfg
	return Cfg, nil
}

// JWTTTL is the token lifetime.
func (c *AppConfig) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// DSN is the postgres connection string.
func (c *AppConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

var DB *gorm.DB

// InitDB opens postgres with gorm's own logger at warn level.
func InitDB(c *AppConfig) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(c.DSN()), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, eris.Wrap(err, "failed to connect database")
	}
	DB = db
	return db, nil
}
