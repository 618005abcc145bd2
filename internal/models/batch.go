package models

import (
	"time"
)

type BatchStatus string

const (
	BatchStatusRunning     BatchStatus = "running"
	BatchStatusCompleted   BatchStatus = "completed"
	BatchStatusInterrupted BatchStatus = "interrupted" // process stopped before the batch finished
)

// BatchRun records one price check run. Only run metadata is stored; offers
// and prices stay in memory.
type BatchRun struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Status      BatchStatus `json:"status" gorm:"not null;index"`
	CardCount   int         `json:"card_count"`
	FoundCount  int         `json:"found_count"` // cards with at least one offer
	OfferCount  int         `json:"offer_count"`
	CardList    string      `json:"card_list"` // normalized "<qty> <name>" lines
	StartedAt   time.Time   `json:"started_at" gorm:"index"`
	CompletedAt *time.Time  `json:"completed_at"`
	DurationMS  int64       `json:"duration_ms"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
