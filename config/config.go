package config

import (
	"fmt"
	"log"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is read from the environment, after an optional .env file
type Config struct {
	Env         string `envconfig:"ENV" default:"dev"`
	Port        string `envconfig:"PORT" default:"8080"`
	Storage     string `envconfig:"STORAGE" default:"postgres"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"hotel-api"`

	DatabaseDSN string `envconfig:"DATABASE_DSN"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`
	DBTimeZone  string `envconfig:"DB_TIMEZONE" default:"America/Mexico_City"`

	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"1440"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUser     string `envconfig:"REDIS_USER"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	CacheTTLMin   int    `envconfig:"CACHE_TTL_MIN" default:"60"`

	RabbitURL      string `envconfig:"RABBIT_URL"`
	NotifyExchange string `envconfig:"NOTIFY_EXCHANGE" default:"hotel.notifications"`

	CloudinaryCloud  string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinarySecret string `envconfig:"CLOUDINARY_API_SECRET"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON  bool   `envconfig:"LOG_JSON" default:"false"`

	AdminName     string `envconfig:"ADMIN_NAME" default:"Administrator"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpireMin) * time.Minute
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMin) * time.Minute
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded, using process environment: %v", err)
	}
}

// Load reads .env (when present) and decodes the environment into Config
func Load() (Config, error) {
	LoadEnv()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	if c.Storage != StorageMemory && c.Storage != StoragePostgres {
		return c, fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	return c, nil
}

// ConnectCloudinary returns nil when no credentials are configured; photo upload is then disabled
func ConnectCloudinary(c Config) (*cloudinary.Cloudinary, error) {
	if c.CloudinaryCloud == "" || c.CloudinaryKey == "" || c.CloudinarySecret == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(c.CloudinaryCloud, c.CloudinaryKey, c.CloudinarySecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return cld, nil
}
