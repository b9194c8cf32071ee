package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbaps/Recruit-AI-1/domain"
)

func TestBuildRecordWithStructuredResult(t *testing.T) {
	res := &Result{
		OverallScore: 82,
		Sections: []Section{
			{SectionName: "Skills", Score: 9, Feedback: "Strong"},
		},
		Strengths:             []string{"Python"},
		OverallRecommendation: "Strong fit",
	}

	now := time.Now()
	rec := BuildRecord("resume1", "J1", "jane.pdf", "Jane Doe", res, "raw reply", now)

	assert.Equal(t, domain.EvaluationID("resume1", "J1"), rec.ID)
	assert.Equal(t, "Jane Doe", rec.CandidateName)
	assert.Equal(t, 82.0, rec.OverallScore)
	assert.Equal(t, 90.0, rec.SkillsMatch)
	assert.Zero(t, rec.ExperienceMatch)
	assert.Zero(t, rec.EducationMatch)
	assert.Equal(t, "jane.pdf", rec.FileName)
	assert.Equal(t, now, rec.ProcessedDate)

	// Feedback round-trips as canonical JSON for detail views.
	var stored Result
	require.NoError(t, json.Unmarshal([]byte(rec.Feedback), &stored))
	assert.Equal(t, *res, stored)
}

func TestBuildRecordRawFallback(t *testing.T) {
	raw := "The candidate seems fine but I cannot produce JSON today."

	rec := BuildRecord("resume1", "J1", "jane.pdf", domain.UnknownCandidate, nil, raw, time.Now())

	assert.Zero(t, rec.OverallScore)
	assert.Zero(t, rec.SkillsMatch)
	assert.Zero(t, rec.ExperienceMatch)
	assert.Zero(t, rec.EducationMatch)
	assert.Equal(t, raw, rec.Feedback)
}

func TestBuildRecordClampsOverallScore(t *testing.T) {
	rec := BuildRecord("r", "j", "f", "n", &Result{OverallScore: 250}, "", time.Now())
	assert.Equal(t, 100.0, rec.OverallScore)

	rec = BuildRecord("r", "j", "f", "n", &Result{OverallScore: -3}, "", time.Now())
	assert.Zero(t, rec.OverallScore)
}

func TestBuildRecordIdentityIsDeterministic(t *testing.T) {
	first := BuildRecord("resume1", "J1", "jane.pdf", "Jane Doe", nil, "raw", time.Now())
	second := BuildRecord("resume1", "J1", "jane.pdf", "Jane Doe", nil, "a different raw reply", time.Now())

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, BuildRecord("resume2", "J1", "x", "n", nil, "", time.Now()).ID)
	assert.NotEqual(t, first.ID, BuildRecord("resume1", "J2", "x", "n", nil, "", time.Now()).ID)
}
