package auth

import (
	"log"

	"gorm.io/gorm"

	"github.com/FolioForge/portfolio-backend/internal/db"
)

func Init(gdb *gorm.DB) {
	if err := db.EnsureSchema(gdb, "app_auth"); err != nil {
		log.Fatal("Failed to ensure schema app_auth: ", err)
	}

	if err := gdb.AutoMigrate(&User{}, &Session{}); err != nil {
		log.Fatal("Failed to auto-migrate auth tables: ", err)
	}
}
