package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	App struct {
		Env         string `env:"APP_ENV" envDefault:"development"`
		Port        string `env:"PORT"    envDefault:"8088"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
		PublicURL   string `env:"PUBLIC_URL"   envDefault:"http://localhost:8088"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"crease_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
		TimeZone string `env:"DB_TIMEZONE" envDefault:"UTC"`
	}
	Auth struct {
		// Empty leaves the scoring routes open, for local development.
		ScorerJWTSecret string   `env:"SCORER_JWT_SECRET"`
		ScorerRoles     []string `env:"SCORER_ROLES" envSeparator:"," envDefault:"scorer,admin"`
	}
	Storage struct {
		// postgres or memory
		Driver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	}
	Scoring struct {
		DefaultOvers   int `env:"SCORING_DEFAULT_OVERS"    envDefault:"20"`
		DispatchBuffer int `env:"SCORING_DISPATCH_BUFFER"  envDefault:"256"`
	}
	Live struct {
		RedisURL      string   `env:"REDIS_URL"`
		RedisStream   string   `env:"REDIS_STREAM_PREFIX" envDefault:"cricket.match"`
		ScoreCacheTTL int      `env:"REDIS_SCORE_TTL_SECONDS" envDefault:"21600"`
		KafkaEnabled  bool     `env:"KAFKA_ENABLED" envDefault:"false"`
		KafkaBrokers  []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
		KafkaTopic    string   `env:"KAFKA_TOPIC"   envDefault:"cricket.scoring"`
		AMQPURL       string   `env:"AMQP_URL"`
		AMQPExchange  string   `env:"AMQP_EXCHANGE" envDefault:"cricket.live"`
	}
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage.Driver)
	}
	if c.Scoring.DefaultOvers < 1 || c.Scoring.DefaultOvers > 50 {
		return fmt.Errorf("SCORING_DEFAULT_OVERS must be between 1 and 50, got %d", c.Scoring.DefaultOvers)
	}
	if c.Scoring.DispatchBuffer < 1 {
		return errors.New("SCORING_DISPATCH_BUFFER must be positive")
	}
	if c.Auth.ScorerJWTSecret == "" && strings.EqualFold(c.App.Env, "production") {
		return errors.New("SCORER_JWT_SECRET is required in production")
	}
	if c.Live.KafkaEnabled && len(c.Live.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return nil
}

// IsDevelopment reports whether APP_ENV is development.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
// It stays nil when the memory storage driver is selected.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig loads configuration from environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	appConfig = cfg
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DB.Host,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.Port,
		c.DB.SSLMode,
		c.DB.TimeZone,
	)
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if dbCfg.IsDevelopment() {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dbCfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	log.Println("Successfully connected to database!")
	return gormDB, nil
}

// Initialize loads all configurations and, for the postgres driver, connects to the database.
// This should be called once at the start of the application.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		if appConfig.Storage.Driver != StoragePostgres {
			log.Printf("Storage driver %q selected, skipping database connection", appConfig.Storage.Driver)
			return
		}
		if _, err = ConnectDB(*appConfig); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It exits if the configuration has not been loaded yet.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}
