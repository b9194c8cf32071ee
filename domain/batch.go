package domain

import (
	"time"

	"github.com/google/uuid"
)

// Batch run states. A run is terminal once completed or failed. Runs with
// skipped items still finish as completed; failed is reserved for runs whose
// entire input set was empty or unusable.
const (
	BatchStatusPending    = "pending"
	BatchStatusProcessing = "processing"
	BatchStatusCompleted  = "completed"
	BatchStatusFailed     = "failed"
)

// BatchRun is the bookkeeping row for one orchestrated pass over a set of
// resumes. ProcessedCount only ever increases and never exceeds TotalResumes.
type BatchRun struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	JobID          string     `gorm:"size:32;not null;index" json:"job_id"`
	Job            JobPosting `gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TotalResumes   int        `json:"total_resumes"`
	ProcessedCount int        `json:"processed_count"`
	Status         string     `gorm:"size:16;default:'pending'" json:"status"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// NewBatchRun creates a pending run for the given posting.
func NewBatchRun(jobID string, total int) *BatchRun {
	return &BatchRun{
		ID:           uuid.NewString(),
		JobID:        jobID,
		TotalResumes: total,
		Status:       BatchStatusPending,
	}
}
