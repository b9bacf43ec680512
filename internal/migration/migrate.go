package migration

import (
	"github.com/quizstage/quizstage-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all workflow tables, including the two
// tag join tables. Safe to run multiple times (AutoMigrate is
// idempotent).
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Run{},
		&domain.Tag{},
		&domain.StagingQuestion{},
		&domain.StagingAnswer{},
		&domain.PublishedQuestion{},
		&domain.PublishedAnswer{},
	)
}
