package model

import "time"

// BlacklistedToken records a revoked jti until its token would have
// expired anyway. Rows past expiry are swept periodically.
type BlacklistedToken struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"-"`
	JTI       string    `gorm:"column:jti;size:64;uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (BlacklistedToken) TableName() string { return "token_blacklist" }

func (BlacklistedToken) KeyColumn() string { return "id" }
