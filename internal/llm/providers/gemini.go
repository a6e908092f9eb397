package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"letterforge/internal/config"
	"letterforge/internal/llm/schema"
	"letterforge/internal/logging"
	"letterforge/pkg/models"
)

// GeminiProvider implements the provider interface using Google's Gemini
// models with JSON response mode.
type GeminiProvider struct {
	config *config.Config
	logger logging.Logger
	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider instance. The client
// connects lazily on first use.
func NewGeminiProvider(cfg *config.Config) *GeminiProvider {
	return &GeminiProvider{
		config: cfg,
		logger: logging.GetGlobalLogger().WithField("provider", "gemini"),
	}
}

// ExtractJobDetails analyzes posting text and returns structured job details.
func (gp *GeminiProvider) ExtractJobDetails(ctx context.Context, content, link string) (*models.JobDetails, error) {
	startTime := time.Now()

	gp.logger.Info("Starting job analysis", map[string]interface{}{
		"link":           link,
		"content_length": len(content),
	})

	content = truncateForTokenLimit(content, gp.config.LLM.MaxTokens)
	prompt := BuildJobAnalysisPrompt(content, link)

	responseText, err := gp.generateJSON(ctx, prompt, jobDetailsResponseSchema())
	if err != nil {
		return nil, err
	}

	raw := []byte(StripCodeFences(responseText))
	if err := schema.ValidateJobDetails(raw); err != nil {
		return nil, fmt.Errorf("job analysis response rejected: %w", err)
	}

	var job models.JobDetails
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job analysis response: %w", err)
	}

	gp.logger.Info("Job analysis completed", map[string]interface{}{
		"link":            link,
		"job_title":       job.Title,
		"company":         job.Company,
		"processing_time": time.Since(startTime).String(),
	})
	return &job, nil
}

// ComposeCoverLetter writes a cover letter matching the profile against
// the job.
func (gp *GeminiProvider) ComposeCoverLetter(ctx context.Context, job *models.JobDetails, profile *models.Profile) (*models.CoverLetterResponse, error) {
	startTime := time.Now()

	prompt := BuildCoverLetterPrompt(job, profile)

	responseText, err := gp.generateJSON(ctx, prompt, coverLetterResponseSchema())
	if err != nil {
		return nil, err
	}

	raw := []byte(StripCodeFences(responseText))
	if err := schema.ValidateCoverLetter(raw); err != nil {
		return nil, fmt.Errorf("cover letter response rejected: %w", err)
	}

	var letter models.CoverLetterResponse
	if err := json.Unmarshal(raw, &letter); err != nil {
		return nil, fmt.Errorf("failed to parse cover letter response: %w", err)
	}

	gp.logger.Info("Cover letter composed", map[string]interface{}{
		"job_title":       job.Title,
		"company":         job.Company,
		"touchpoints":     len(letter.Touchpoints),
		"processing_time": time.Since(startTime).String(),
	})
	return &letter, nil
}

// generateJSON sends a prompt to Gemini in JSON response mode and returns
// the text of the first candidate.
func (gp *GeminiProvider) generateJSON(ctx context.Context, prompt string, responseSchema *genai.Schema) (string, error) {
	client, err := gp.getClient(ctx)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(gp.config.LLM.Model)
	model.SetTemperature(gp.config.LLM.Temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = responseSchema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in Gemini response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in Gemini response")
	}

	var responseText string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText += string(text)
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("no text parts in Gemini response")
	}
	return responseText, nil
}

// getClient lazily connects the genai client.
func (gp *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	gp.mu.Lock()
	defer gp.mu.Unlock()

	if gp.client != nil {
		return gp.client, nil
	}

	if gp.config.LLM.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured - set GEMINI_API_KEY environment variable")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(gp.config.LLM.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	gp.client = client
	return client, nil
}

// IsHealthy checks if the Gemini provider is available.
func (gp *GeminiProvider) IsHealthy(ctx context.Context) error {
	client, err := gp.getClient(ctx)
	if err != nil {
		return err
	}

	model := client.GenerativeModel(gp.config.LLM.Model)
	if _, err := model.GenerateContent(ctx, genai.Text("Hello")); err != nil {
		return fmt.Errorf("Gemini API health check failed: %w", err)
	}
	return nil
}

// Name returns the provider identifier.
func (gp *GeminiProvider) Name() string {
	return "gemini"
}

func jobDetailsResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":        {Type: genai.TypeString},
			"company":      {Type: genai.TypeString},
			"requirements": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"culture":      {Type: genai.TypeString},
			"summary":      {Type: genai.TypeString},
		},
		Required: []string{"title", "company", "requirements", "summary"},
	}
}

func coverLetterResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"content":     {Type: genai.TypeString, Description: "The full text of the cover letter in Markdown format."},
			"touchpoints": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "List of key matching points found between user and job."},
			"suggestions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Tips for tailoring the application further."},
		},
		Required: []string{"content", "touchpoints", "suggestions"},
	}
}
