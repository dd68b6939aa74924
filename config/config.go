// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	// Seed creates the admin user and the reference vocabulary, then exits.
	Seed = pflag.Bool("seed", false, "Seeds the database and exits")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Errorf("failed to generate a JWT secret, %w", err))
	}
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.access_ttl_min", "jwt_access_ttl_min")
	v.BindEnv("jwt.refresh_ttl_days", "jwt_refresh_ttl_days")

	v.BindEnv("auth.blacklist_sweep_hours", "auth_blacklist_sweep_hours")

	v.BindEnv("storage.images_dir", "storage_images_dir")

	v.BindEnv("seed.admin_email", "seed_admin_email")
	v.BindEnv("seed.admin_password", "seed_admin_password")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("jwt.access_ttl_min", 30)
	v.SetDefault("jwt.refresh_ttl_days", 7)

	v.SetDefault("auth.blacklist_sweep_hours", 1)

	v.SetDefault("storage.images_dir", "static/images")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("no database DSN provided")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("jwt.access_ttl_min") <= 0 {
		return errors.New("jwt.access_ttl_min must be bigger than 0")
	}

	if v.GetInt("jwt.refresh_ttl_days") <= 0 {
		return errors.New("jwt.refresh_ttl_days must be bigger than 0")
	}

	if v.GetInt("auth.blacklist_sweep_hours") <= 0 {
		return errors.New("auth.blacklist_sweep_hours must be bigger than 0")
	}

	if v.GetString("storage.images_dir") == "" {
		return errors.New("no image storage directory provided")
	}

	if *Seed {
		if v.GetString("seed.admin_email") == "" {
			return errors.New("seed.admin_email can't be empty when seeding")
		}
		if v.GetString("seed.admin_password") == "" {
			return errors.New("seed.admin_password can't be empty when seeding")
		}
	}

	return nil
}
