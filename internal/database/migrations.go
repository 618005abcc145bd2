package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/codyseavey/tcg-pricecheck/internal/models"
)

// RunMigrations runs data fixups after schema changes. Safe to run on every start.
func RunMigrations(db *gorm.DB) error {
	return markInterruptedBatches(db)
}

// markInterruptedBatches closes out runs left "running" by a previous
// process; their results were only ever held in memory.
func markInterruptedBatches(db *gorm.DB) error {
	result := db.Model(&models.BatchRun{}).
		Where("status = ?", models.BatchStatusRunning).
		Update("status", models.BatchStatusInterrupted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Marked %d unfinished batches as interrupted", result.RowsAffected)
	}
	return nil
}
