package internal

import (
	"avtopark/vehicle-api/internal/service"
	"avtopark/vehicle-api/pkg/security"

	"gorm.io/gorm"
)

// Deps bundles the shared handles every handler needs. It is constructed
// once at startup and passed down explicitly.
type Deps struct {
	DB    *gorm.DB
	Argon *security.Hasher
	Auth  *service.Auth
}
