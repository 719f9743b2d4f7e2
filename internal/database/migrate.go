package database

import (
	"gorm.io/gorm"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.DeviceSession{},
	)
}
