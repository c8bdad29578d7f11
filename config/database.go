package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DBParams is read with the ENV prefix, e.g. DEV_DB_HOST or PROD_DB_NAME
type DBParams struct {
	User     string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"5432"`
	Name     string `envconfig:"NAME" default:"hotel"`
}

func getDBConfigByEnv(c Config) (string, error) {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN, nil
	}

	switch c.Env {
	case "dev", "qc", "prod":
	default:
		return "", fmt.Errorf("unknown environment: %s", c.Env)
	}

	var p DBParams
	if err := envconfig.Process(strings.ToUpper(c.Env)+"_DB", &p); err != nil {
		return "", err
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		p.Host, p.User, p.Password, p.Name, p.Port, c.DBSSLMode, c.DBTimeZone), nil
}

func ConnectDB(c Config) (*gorm.DB, error) {
	dsn, err := getDBConfigByEnv(c)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if c.Env == "dev" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	return db, nil
}
