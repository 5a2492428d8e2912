package content

import (
	"log"

	"gorm.io/gorm"

	"github.com/FolioForge/portfolio-backend/internal/db"
)

func Init(gdb *gorm.DB) {
	if err := db.EnsureSchema(gdb, "content"); err != nil {
		log.Fatal("Failed to ensure schema content: ", err)
	}

	// uuid_generate_v4 defaults on the content tables
	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension: ", err)
	}

	if err := gdb.AutoMigrate(&Post{}, &Project{}, &Testimonial{}, &Page{}); err != nil {
		log.Fatal("Failed to auto-migrate content tables: ", err)
	}
}
