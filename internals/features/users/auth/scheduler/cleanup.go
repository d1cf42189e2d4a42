package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"hairnerds_backend/internals/features/users/auth/model"
)

// StartTokenCleanupScheduler menjadwalkan pembersihan harian utk
// token_blacklists dan refresh_tokens yang sudah lewat umurnya.
func StartTokenCleanupScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		log.Println("[CLEANUP] Menjalankan pembersihan token kadaluarsa...")
		now := time.Now()

		res := db.Where("token_blacklist_expired_at < ?", now).
			Delete(&model.TokenBlacklistModel{})
		if res.Error != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus blacklist: %v", res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[CLEANUP] %d token blacklist dihapus", res.RowsAffected)
		}

		res = db.Where("refresh_token_expires_at < ?", now).
			Delete(&model.RefreshTokenModel{})
		if res.Error != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus refresh token: %v", res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[CLEANUP] %d refresh token dihapus", res.RowsAffected)
		}
	})
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal daftar cron: %v", err)
	}

	c.Start()
	return c
}
