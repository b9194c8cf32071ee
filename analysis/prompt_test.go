package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptEmbedsInputsVerbatim(t *testing.T) {
	resume := "Jane Doe\nSkills: Python, SQL"
	job := "Needs Python and SQL skills, 2 years experience"

	prompt := BuildPrompt(resume, job)

	assert.Contains(t, prompt, resume)
	assert.Contains(t, prompt, job)
	assert.Contains(t, prompt, "expert HR professional and recruiter")
}

func TestBuildPromptSpecifiesReplySchema(t *testing.T) {
	prompt := BuildPrompt("resume", "job")

	for _, field := range []string{
		"overall_score",
		"sections",
		"section_name",
		"improvements",
		"strengths",
		"weaknesses",
		"missing_skills",
		"overall_recommendation",
	} {
		assert.Contains(t, prompt, field)
	}

	for _, section := range []string{
		"Personal Information",
		"Summary/Objective",
		"Experience",
		"Education",
		"Skills",
		"Additional Sections",
	} {
		assert.Contains(t, prompt, section)
	}
}

func TestBuildPromptNeverFails(t *testing.T) {
	assert.NotEmpty(t, BuildPrompt("", ""))
}
