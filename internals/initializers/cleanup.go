package initializers

import (
	"log"
	"time"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"
)

// StartTokenCleanup runs a background janitor that hard-deletes access
// token rows once they can no longer authenticate anything: rows past
// their expiry, and revoked rows. Password-reset rows are not touched
// here; the reset flows purge those themselves.
func StartTokenCleanup() {
	cleanupInterval := config.GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 30, true)
	ticker := time.NewTicker(time.Duration(cleanupInterval) * time.Minute)

	go func() {
		for range ticker.C {
			// Unscoped() bypasses gorm's soft delete so the table does
			// not grow indefinitely.
			expired := DB.Unscoped().Where("expires_at < ?", time.Now()).Delete(&models.AccessToken{})
			revoked := DB.Unscoped().Where("revoked = ?", true).Delete(&models.AccessToken{})

			if expired.RowsAffected > 0 || revoked.RowsAffected > 0 {
				log.Printf("Janitor: Cleaned %d expired and %d revoked tokens",
					expired.RowsAffected, revoked.RowsAffected)
			}
		}
	}()
}
