// Package service holds the auth/session logic and background upkeep
package service

import (
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/pkg/security"
	"context"
	"errors"
	"time"

	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Auth authenticates credentials and manages the bearer-token lifecycle:
// issued tokens stay valid until their expiry passes or their jti lands
// in the blacklist.
type Auth struct {
	db    *gorm.DB
	argon *security.Hasher
}

func NewAuth(db *gorm.DB, argon *security.Hasher) *Auth {
	return &Auth{db: db, argon: argon}
}

// TokenPair is what a successful login or refresh hands out.
type TokenPair struct {
	Access  security.Token
	Refresh security.Token
}

// Authenticate looks up the user by email and verifies the password.
// Unknown email and wrong password both return nil so responses can't
// be used to probe which accounts exist.
func (a *Auth) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User

	err := a.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	ok, err := a.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return &user, nil
}

// IssuePair mints a short-lived access token and a long-lived refresh
// token for the user, each with its own jti.
func (a *Auth) IssuePair(userID int) (*TokenPair, error) {
	secret := viper.GetString("jwt.secret")

	access, err := security.MintToken(secret, userID, time.Duration(viper.GetInt("jwt.access_ttl_min"))*time.Minute)
	if err != nil {
		return nil, err
	}

	refresh, err := security.MintToken(secret, userID, time.Duration(viper.GetInt("jwt.refresh_ttl_days"))*24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// IsRevoked reports whether the jti sits in the blacklist.
func (a *Auth) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64

	err := a.db.WithContext(ctx).
		Model(&model.BlacklistedToken{}).
		Where("jti = ?", jti).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Revoke blacklists a jti until the given expiry. Revoking the same jti
// twice is a no-op: the duplicate insert means the work is already done.
func (a *Auth) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	err := a.db.WithContext(ctx).
		Create(&model.BlacklistedToken{JTI: jti, ExpiresAt: expiresAt}).
		Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}

	return err
}

// CleanupExpired drops blacklist rows whose expiry has passed. A token
// past expiry is rejected by the exp claim anyway, so this only frees
// storage and never removes a still-valid revocation.
func (a *Auth) CleanupExpired(ctx context.Context) error {
	return a.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.BlacklistedToken{}).
		Error
}
