package providers

import (
	"fmt"
	"strings"

	"letterforge/pkg/models"
)

// BuildJobAnalysisPrompt creates the prompt used to turn scraped posting
// text into structured job details.
func BuildJobAnalysisPrompt(content, link string) string {
	return fmt.Sprintf(`You are a job posting analyzer. Analyze the job posting content below (from %s) and provide structured details.
Focus on the Job Title, Company Name, Key Technical/Soft Skill Requirements, and Company Culture.

Return ONLY a valid JSON object with exactly these fields:

{
  "title": "string - The job title",
  "company": "string - The company name",
  "requirements": ["array of strings - Key technical and soft skill requirements"],
  "culture": "string - Company culture as described or implied by the posting",
  "summary": "string - Brief summary of the role (2-3 sentences max)"
}

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text or explanation
2. If information is not found, use empty string "" for strings and empty array [] for arrays
3. Keep the summary concise but informative

JOB POSTING CONTENT:
%s`, link, content)
}

// BuildCoverLetterPrompt creates the prompt used to compose a cover
// letter from a profile and analyzed job details.
func BuildCoverLetterPrompt(job *models.JobDetails, profile *models.Profile) string {
	documentTexts := make([]string, 0, len(profile.Documents))
	for _, doc := range profile.Documents {
		documentTexts = append(documentTexts, doc.Content)
	}

	profileContext := fmt.Sprintf(`User Name: %s
User Bio: %s
Skills: %s
Supporting Documents Text: %s`,
		profile.Name,
		profile.Bio,
		strings.Join(profile.Skills, ", "),
		strings.Join(documentTexts, "\n\n"))

	jobContext := fmt.Sprintf(`Job Title: %s
Company: %s
Requirements: %s
Company Culture: %s
Job Summary: %s`,
		job.Title,
		job.Company,
		strings.Join(job.Requirements, ", "),
		job.Culture,
		job.Summary)

	return fmt.Sprintf(`Act as a world-class career coach.
Using the User Profile and Job Details provided below, create an impeccable, professional, and highly persuasive cover letter.

CRITICAL INSTRUCTIONS:
1. Identify specific "touchpoints" where the user's skills/experience directly solve the company's needs.
2. Maintain a professional yet enthusiastic tone that matches the company culture.
3. Ensure the cover letter is structured: Header, Salutation, Hook, Body (Evidence/Touchpoints), Call to Action, Sign-off.
4. Provide a list of the touchpoints you identified and suggestions for the user to improve the application further.

Return ONLY a valid JSON object with exactly these fields:

{
  "content": "string - The full text of the cover letter in Markdown format",
  "touchpoints": ["array of strings - Key matching points found between user and job"],
  "suggestions": ["array of strings - Tips for tailoring the application further"]
}

USER PROFILE:
%s

JOB DETAILS:
%s`, profileContext, jobContext)
}

// StripCodeFences removes markdown code fences some models wrap around
// JSON output.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
