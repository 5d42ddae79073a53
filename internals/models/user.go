package models

import (
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName   string `gorm:"column:first_name;index"`
	LastName    string `gorm:"column:last_name;index"`
	Email       string `gorm:"column:email;uniqueIndex"`
	PhoneNumber string `gorm:"column:phone_number;index"`
	Password    string `gorm:"column:password"` // bcrypt hash, never exposed

	// 0:Disable | 1:Enable
	TwoFactorStatus int `gorm:"column:two_factor_status;default:1;index"`
	// 0:Inactive | 1:Active | 2:Archived
	Status int `gorm:"column:status;default:1;index"`
}

// NotArchived excludes soft-deleted (archived) users. Every auth flow
// looks users up through this scope, so an archived account behaves
// exactly like a missing one.
func NotArchived(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", config.ArchivedFlag)
}
