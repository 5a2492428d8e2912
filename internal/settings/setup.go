package settings

import (
	"log"

	"gorm.io/gorm"

	"github.com/FolioForge/portfolio-backend/internal/db"
)

func Init(gdb *gorm.DB) {
	if err := db.EnsureSchema(gdb, "content"); err != nil {
		log.Fatal("Failed to ensure schema content: ", err)
	}

	if err := gdb.AutoMigrate(&Setting{}); err != nil {
		log.Fatal("Failed to auto-migrate settings table: ", err)
	}
}
