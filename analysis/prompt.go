package analysis

import "fmt"

// BuildPrompt constructs the provider-independent analysis prompt. The same
// prompt is sent to every vendor, so the expected JSON reply schema is spelled
// out in full here. Pure string assembly, no validation of either input.
func BuildPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`As an expert HR professional and recruiter, analyze the following resume against the job description.

JOB DESCRIPTION:
%s

RESUME CONTENT:
%s

Please provide a comprehensive analysis in the following JSON format:
{
    "overall_score": <score out of 100>,
    "sections": [
        {
            "section_name": "<section name>",
            "content": "<section content summary>",
            "score": <score out of 10>,
            "feedback": "<detailed feedback>",
            "improvements": ["<improvement 1>", "<improvement 2>"]
        }
    ],
    "strengths": ["<strength 1>", "<strength 2>"],
    "weaknesses": ["<weakness 1>", "<weakness 2>"],
    "missing_skills": ["<missing skill 1>", "<missing skill 2>"],
    "overall_recommendation": "<detailed recommendation>"
}

Break down the resume into these sections: Personal Information, Summary/Objective, Experience, Education, Skills, and Additional Sections.
Provide specific, actionable feedback for each section.
Make sure to return valid JSON format.`, jobDescription, resumeText)
}
