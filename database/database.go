package database

import (
	"fmt"
	"log"

	"github.com/rezotera/iprep_portal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the portal's embedded store. The portal keeps only its own
// data here (sessions, promo codes, the activity log); everything else lives
// behind the platform API.
func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open portal store at %s: %w", path, err)
	}

	fmt.Println("✅ Portal store opened successfully")
	return db, nil
}

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Session{},
		&models.PromoCode{},
		&models.ActivityEntry{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate portal store: %v", err)
	}
	fmt.Println("✅ Portal store migration successful")
}
