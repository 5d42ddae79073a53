package models

import "gorm.io/gorm"

// PasswordReset rows are append-only: a new forgot-password request adds
// a row without touching earlier ones. Only the most recent row created
// within the last 5 minutes counts; stale rows are purged when a window
// lookup comes up empty and when a reset consumes the token.
type PasswordReset struct {
	gorm.Model
	Email string `gorm:"column:email;index"`
	Token string `gorm:"column:token"`
}
