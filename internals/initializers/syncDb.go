package initializers

import (
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.UserCode{},
		&models.PasswordReset{},
		&models.AccessToken{},
	)
	if err != nil {
		panic("Failed to migrate database")
	}
}
