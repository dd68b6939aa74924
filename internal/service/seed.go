package service

import (
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/pkg/security"
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Seed creates the admin account from config plus the reference
// vocabulary. It is idempotent so it can run against a live database.
func Seed(db *gorm.DB, argon *security.Hasher) error {
	hash, err := argon.GenerateFromPassword(viper.GetString("seed.admin_password"))
	if err != nil {
		return fmt.Errorf("failed to hash admin password, %w", err)
	}

	admin := model.User{
		Email:        viper.GetString("seed.admin_email"),
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      true,
	}

	err = db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error
	if err != nil {
		return fmt.Errorf("failed to seed admin user, %w", err)
	}

	for _, name := range []string{"Dump trucks", "Tractor units", "Flatbeds", "Vans"} {
		c := model.Category{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"Frame", "Frameless"} {
		c := model.Chassis{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"Diesel", "Gasoline", "Electric"} {
		e := model.Engine{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&e).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"KamAZ", "MAZ", "Ural", "GAZ"} {
		f := model.Factory{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&f).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"4x2", "4x4", "6x4", "6x6", "8x4"} {
		w := model.WheelFormula{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&w).Error; err != nil {
			return err
		}
	}

	return nil
}
