package analysis

import (
	"regexp"
	"strings"

	"github.com/orbaps/Recruit-AI-1/domain"
)

const nameScanLines = 10

// Capitalized-word shapes tried in order against each line: "First Last",
// "First M. Last", "First Middle Last".
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`^([A-Z][a-z]+ [A-Z]\. [A-Z][a-z]+)`),
	regexp.MustCompile(`^([A-Z][a-z]+ [A-Z][a-z]+ [A-Z][a-z]+)`),
}

// CandidateName guesses the candidate's display name from the opening lines
// of the resume text. This is a heuristic; text that matches no pattern yields
// the sentinel name rather than an error.
func CandidateName(resumeText string) string {
	lines := strings.Split(resumeText, "\n")
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		for _, pattern := range namePatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
	}

	return domain.UnknownCandidate
}
