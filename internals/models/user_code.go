package models

import "gorm.io/gorm"

// UserCode is the single live two-factor code for a user. Issuing a new
// code overwrites the previous row; verification matches on user and
// code value only, with no expiry.
type UserCode struct {
	gorm.Model
	UserID uint   `gorm:"column:user_id;uniqueIndex"`
	Code   string `gorm:"column:code"`
}
