package domain

import (
	"crypto/md5"
	"fmt"
	"time"
)

// Job posting lifecycle. Postings are never hard-deleted; closing one is a
// status transition so historical evaluations keep a valid reference.
const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

const (
	JobPriorityLow    = "low"
	JobPriorityMedium = "medium"
	JobPriorityHigh   = "high"
)

type JobPosting struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Company      string    `gorm:"size:255;not null" json:"company"`
	Location     string    `gorm:"size:255" json:"location"`
	Requirements string    `gorm:"type:text;not null" json:"requirements"`
	CreatedDate  time.Time `json:"created_date"`
	Status       string    `gorm:"size:16;default:'active'" json:"status"`
	Priority     string    `gorm:"size:16;default:'medium'" json:"priority"`
}

// NewJobID derives a short unique id for a posting from its title, company and
// creation time.
func NewJobID(title, company string, now time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%s_%s", title, company, now.Format(time.RFC3339Nano))))
	return fmt.Sprintf("%x", sum)[:8]
}
