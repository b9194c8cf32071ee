package analysis

import (
	"encoding/json"
	"time"

	"github.com/orbaps/Recruit-AI-1/domain"
)

// BuildRecord assembles the stored evaluation for one resume. With a parsed
// result the feedback is the result re-serialized to canonical JSON so detail
// views can decode it again; without one, every score is 0 and the raw model
// reply is stored verbatim.
func BuildRecord(resumeID, jobID, fileName, candidateName string, res *Result, raw string, processedAt time.Time) domain.EvaluationRecord {
	rec := domain.EvaluationRecord{
		ID:            domain.EvaluationID(resumeID, jobID),
		ResumeID:      resumeID,
		JobID:         jobID,
		CandidateName: candidateName,
		Feedback:      raw,
		ProcessedDate: processedAt,
		FileName:      fileName,
	}

	if res == nil {
		return rec
	}

	rec.OverallScore = clampScore(res.OverallScore)
	rec.SkillsMatch, rec.ExperienceMatch, rec.EducationMatch = ComponentScores(res)
	if feedback, err := json.Marshal(res); err == nil {
		rec.Feedback = string(feedback)
	}

	return rec
}
