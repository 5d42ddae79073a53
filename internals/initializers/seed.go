package initializers

import (
	"log"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/utils"
)

// SeedSuperAdmin provisions the administrative account from SUPER_ADMIN_*
// env vars. Create-or-update by email so redeploys converge on the
// configured credentials instead of duplicating the row.
func SeedSuperAdmin() {
	email := config.GetEnvAsStr("SUPER_ADMIN_EMAIL_ADDRESS", "")
	password := config.GetEnvAsStr("SUPER_ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		log.Println("Seeder: SUPER_ADMIN_EMAIL_ADDRESS or SUPER_ADMIN_PASSWORD not set, skipping")
		return
	}

	hasher := utils.NewBcryptHasher()
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Printf("Seeder: failed to hash super admin password: %v", err)
		return
	}

	phone := config.GetEnvAsStr("SUPER_ADMIN_PHONE_NUMBER", "")
	twoFactor := config.TwoFADisableFlag
	if phone != "" {
		twoFactor = config.TwoFAEnableFlag
	}

	admin := models.User{
		FirstName:       config.GetEnvAsStr("SUPER_ADMIN_FIRST_NAME", "Super"),
		LastName:        config.GetEnvAsStr("SUPER_ADMIN_LAST_NAME", "Admin"),
		Email:           email,
		PhoneNumber:     phone,
		Password:        hash,
		TwoFactorStatus: twoFactor,
		Status:          config.ActiveFlag,
	}

	var existing models.User
	if err := DB.Where("email = ?", email).First(&existing).Error; err == nil {
		if err := DB.Model(&existing).Updates(map[string]interface{}{
			"password":          admin.Password,
			"phone_number":      admin.PhoneNumber,
			"two_factor_status": admin.TwoFactorStatus,
			"status":            admin.Status,
		}).Error; err != nil {
			log.Printf("Seeder: failed to update super admin: %v", err)
		}
		return
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Seeder: failed to create super admin: %v", err)
	}
}
