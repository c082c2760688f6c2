package database

import (
	"fmt"
	"log"
	"time"

	"github.com/amritamcare/amritam-cms/app/models"
	"github.com/amritamcare/amritam-cms/internal/pkg/env"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

func SetupDatabase() {
	var err error
	dsn := buildDSN()

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			if migErr := InitSchema(DB); migErr != nil {
				log.Printf("Failed to migrate schema: %v", migErr)
			}
			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			log.Printf("Retrying in %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

// GetDB returns the shared database handle
func GetDB() *gorm.DB {
	return DB
}

// InitSchema creates the blogs table and its supporting index. It is run at
// startup and exposed via GET /api/blogs/init so a fresh managed database can
// be bootstrapped without shell access.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Blog{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// The listing query orders by created_at DESC on every call.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_blogs_created_at ON blogs (created_at DESC)").Error; err != nil {
		return fmt.Errorf("create created_at index: %w", err)
	}

	return nil
}

func buildDSN() string {
	// A full connection string wins (managed hosts hand these out directly)
	if url := env.GetEnv("DATABASE_URL", ""); url != "" {
		return url
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_NAME", ""),
		env.GetEnv("DB_PORT", "5432"),
		env.GetEnv("DB_SSLMODE", "disable"),
	)
}
