package domain

import (
	"crypto/md5"
	"fmt"
	"time"
)

// UnknownCandidate is stored when no name could be extracted from a resume.
const UnknownCandidate = "Unknown Candidate"

// EvaluationRecord is the stored outcome of evaluating one resume against one
// job posting. Records are immutable once written, except that re-running the
// same (resume, job) pair overwrites the previous row.
type EvaluationRecord struct {
	ID              string     `gorm:"primaryKey;size:32" json:"id"`
	ResumeID        string     `gorm:"size:32;not null" json:"resume_id"`
	JobID           string     `gorm:"size:32;not null;index" json:"job_id"`
	Job             JobPosting `gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CandidateName   string     `gorm:"size:255" json:"candidate_name"`
	OverallScore    float64    `json:"overall_score"`
	SkillsMatch     float64    `json:"skills_match"`
	ExperienceMatch float64    `json:"experience_match"`
	EducationMatch  float64    `json:"education_match"`
	Feedback        string     `gorm:"type:longtext" json:"feedback"`
	ProcessedDate   time.Time  `json:"processed_date"`
	FileName        string     `gorm:"size:255" json:"file_name"`
}

// EvaluationID is a pure function of the resume and job identities, which
// makes persistence an upsert: reprocessing a resume for the same posting
// replaces the earlier result instead of duplicating it.
func EvaluationID(resumeID, jobID string) string {
	sum := md5.Sum([]byte(resumeID + "_" + jobID))
	return fmt.Sprintf("%x", sum)
}

// NewResumeID derives a stable short id for an uploaded resume file. Stability
// across uploads of the same file name is what keeps re-runs idempotent.
func NewResumeID(fileName string) string {
	sum := md5.Sum([]byte(fileName))
	return fmt.Sprintf("%x", sum)[:8]
}
