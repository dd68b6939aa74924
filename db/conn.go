// Package db opens the relational store used by the application
package db

import (
	"avtopark/vehicle-api/internal/model"
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured database (db.driver + db.dsn) and migrates
// every table. TranslateError lets the repository detect duplicate-key
// violations through gorm.ErrDuplicatedKey regardless of the driver.
func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("db.driver") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("db.dsn"))
	default:
		dialector = sqlite.Open(viper.GetString("db.dsn"))
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.Category{},
		model.Chassis{},
		model.Engine{},
		model.Factory{},
		model.WheelFormula{},
		model.Vehicle{},
		model.PriceList{},
		model.Request{},
		model.OrderItem{},
		model.News{},
		model.BlacklistedToken{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
