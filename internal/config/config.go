// internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"investx-ledger/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort      string
	MigrationsURL   string
	AdminIdentities []string
	DB              db.Config
}

// LoadConfig loads configuration from environment variables, with an optional
// .env file in the working directory. Defaults suit local development.
func LoadConfig() (*AppConfig, error) {
	v := viper.New()

	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MIGRATIONS_URL", "file://migrations")
	v.SetDefault("ADMIN_IDS", "admin@investx.rw")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "ledgerdb")
	v.SetDefault("DB_SSLMODE", "disable")

	// A missing .env file is fine; environment variables still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var adminIDs []string
	for _, id := range strings.Split(v.GetString("ADMIN_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			adminIDs = append(adminIDs, id)
		}
	}

	return &AppConfig{
		ServerPort:      v.GetString("SERVER_PORT"),
		MigrationsURL:   v.GetString("MIGRATIONS_URL"),
		AdminIdentities: adminIDs,
		DB: db.Config{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
	}, nil
}
