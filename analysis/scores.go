package analysis

import "strings"

// ComponentScores maps the per-section feedback onto skills, experience and
// education scores on a 0-100 scale. Classification is a best-effort substring
// match on the section name, intended for ranking only. When several sections
// match the same category the last one wins; categories with no matching
// section stay at 0.
func ComponentScores(res *Result) (skills, experience, education float64) {
	if res == nil {
		return 0, 0, 0
	}

	for _, section := range res.Sections {
		name := strings.ToLower(section.SectionName)
		score := clampScore(section.Score * 10)

		switch {
		case strings.Contains(name, "skill"):
			skills = score
		case strings.Contains(name, "experience"), strings.Contains(name, "work"):
			experience = score
		case strings.Contains(name, "education"):
			education = score
		}
	}

	return skills, experience, education
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
