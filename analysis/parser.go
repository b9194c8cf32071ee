package analysis

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Result is the structured analysis decoded from a model reply.
type Result struct {
	OverallScore          float64   `json:"overall_score"`
	Sections              []Section `json:"sections"`
	Strengths             []string  `json:"strengths"`
	Weaknesses            []string  `json:"weaknesses"`
	MissingSkills         []string  `json:"missing_skills"`
	OverallRecommendation string    `json:"overall_recommendation"`
}

// Section is the per-section feedback block inside a Result. Scores are on a
// 0-10 scale as requested by the prompt.
type Section struct {
	SectionName  string   `json:"section_name"`
	Content      string   `json:"content"`
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Improvements []string `json:"improvements"`
}

// Parse extracts the first well-formed JSON object embedded in a model reply.
// Models routinely wrap the JSON in prose or code fences, so the span between
// the first "{" and the last "}" is tried as JSON. A nil return is not an
// error: the caller falls back to storing the raw reply untouched.
func Parse(raw string) *Result {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &data); err != nil {
		return nil
	}

	res := &Result{
		OverallScore:          coerceFloat(data["overall_score"]),
		Strengths:             coerceStrings(data["strengths"]),
		Weaknesses:            coerceStrings(data["weaknesses"]),
		MissingSkills:         coerceStrings(data["missing_skills"]),
		OverallRecommendation: coerceString(data["overall_recommendation"]),
	}

	sections, _ := data["sections"].([]any)
	for _, entry := range sections {
		section, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		res.Sections = append(res.Sections, Section{
			SectionName:  coerceString(section["section_name"]),
			Content:      coerceString(section["content"]),
			Score:        coerceFloat(section["score"]),
			Feedback:     coerceString(section["feedback"]),
			Improvements: coerceStrings(section["improvements"]),
		})
	}

	return res
}

// Models do not reliably honor the schema's field types, so values are coerced
// rather than rejected. Anything unusable decays to the zero value.

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceStrings(v any) []string {
	entries, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s := coerceString(entry); s != "" {
			out = append(out, s)
		}
	}
	return out
}
