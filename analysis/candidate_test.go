package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbaps/Recruit-AI-1/domain"
)

func TestCandidateName(t *testing.T) {
	cases := []struct {
		name   string
		resume string
		want   string
	}{
		{
			name:   "first last on first line",
			resume: "Jane Doe\nSkills: Python, SQL\nExperience: 2 years",
			want:   "Jane Doe",
		},
		{
			name:   "name with middle initial",
			resume: "John Q. Public\nSoftware Engineer",
			want:   "John Q. Public",
		},
		{
			name:   "name after blank header lines",
			resume: "\n\nResume\nAlice Smith\nalice@example.com",
			want:   "Alice Smith",
		},
		{
			name:   "lowercase text yields sentinel",
			resume: "curriculum vitae\ncontact: someone@example.com",
			want:   domain.UnknownCandidate,
		},
		{
			name:   "empty text yields sentinel",
			resume: "",
			want:   domain.UnknownCandidate,
		},
		{
			name:   "name beyond scan window is ignored",
			resume: strings.Repeat("header line\n", 12) + "Bob Brown",
			want:   domain.UnknownCandidate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CandidateName(tc.resume))
		})
	}
}
