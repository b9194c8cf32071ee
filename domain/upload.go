package domain

import "time"

// ResumeUpload holds an uploaded resume document until a batch run picks it
// up. The raw bytes are kept so text extraction happens inside the run, where
// an unreadable document is an isolated per-item failure.
type ResumeUpload struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	FileName  string    `gorm:"size:255;not null" json:"file_name"`
	Data      []byte    `gorm:"type:longblob;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
