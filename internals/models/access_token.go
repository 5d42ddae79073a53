package models

import (
	"time"

	"gorm.io/gorm"
)

// AccessToken backs the opaque bearer credentials. The signed token the
// client holds carries TokenID as its jti; revocation flips the flag
// here, so a revoked credential dies immediately regardless of its
// embedded expiry.
type AccessToken struct {
	gorm.Model
	UserID    uint      `gorm:"column:user_id;index"`
	TokenID   string    `gorm:"column:token_id;uniqueIndex"`
	Revoked   bool      `gorm:"column:revoked;default:false"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
}
