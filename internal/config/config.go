package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Export    ExportConfig    `mapstructure:"export"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
}

type ServerConfig struct {
	Port        int               `mapstructure:"port"`
	Mode        string            `mapstructure:"mode"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// MaintenanceConfig controls the maintenance-mode middleware. When Enabled
// is false the middleware is never installed.
type MaintenanceConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	AllowStaff bool `mapstructure:"allow_staff"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	Path            string        `mapstructure:"path"`
	ReplicaHost     string        `mapstructure:"replica_host"`
	ReplicaPort     int           `mapstructure:"replica_port"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the primary connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return c.postgresDSN(c.Host, c.Port)
}

// ReplicaDSN builds the replica connection string. Empty when no replica is
// configured.
func (c *DatabaseConfig) ReplicaDSN() string {
	if c.Driver != "postgres" || c.ReplicaHost == "" {
		return ""
	}
	port := c.ReplicaPort
	if port == 0 {
		port = c.Port
	}
	return c.postgresDSN(c.ReplicaHost, port)
}

func (c *DatabaseConfig) postgresDSN(host string, port int) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
}

// ExportConfig holds defaults for the manifest exporter. Both sizes can be
// overridden per invocation on the command line.
type ExportConfig struct {
	QueryBatchSize int `mapstructure:"query_batch_size"`
	SubBatchSize   int `mapstructure:"sub_batch_size"`
}

// ExtractorConfig points at the document text extraction microservice.
type ExtractorConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("server.maintenance.enabled", false)
	v.SetDefault("server.maintenance.allow_staff", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/courtlistener.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "courtlistener")
	v.SetDefault("database.name", "courtlistener")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.endpoint", "s3.amazonaws.com")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("export.query_batch_size", 1_000_000)
	v.SetDefault("export.sub_batch_size", 100)
	v.SetDefault("extractor.base_url", "http://localhost:5050")
	v.SetDefault("extractor.timeout", 60*time.Second)
	v.SetDefault("extractor.retry_count", 3)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.replica_host", "DB_REPLICA_HOST")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("storage.endpoint", "AWS_S3_ENDPOINT")
	v.BindEnv("storage.access_key", "AWS_ACCESS_KEY_ID")
	v.BindEnv("storage.secret_key", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("storage.region", "AWS_REGION")
	v.BindEnv("extractor.base_url", "EXTRACTOR_BASE_URL")
	v.BindEnv("server.maintenance.enabled", "MAINTENANCE_MODE_ENABLED")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
