package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"letterforge/internal/config"
	"letterforge/internal/llm/schema"
	"letterforge/internal/logging"
	"letterforge/pkg/models"
)

// ClaudeProvider implements the provider interface using Anthropic's Claude.
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance.
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger().WithField("provider", "claude"),
	}
}

// ExtractJobDetails analyzes posting text and returns structured job details.
func (cp *ClaudeProvider) ExtractJobDetails(ctx context.Context, content, link string) (*models.JobDetails, error) {
	startTime := time.Now()

	cp.logger.Info("Starting job analysis", map[string]interface{}{
		"link":           link,
		"content_length": len(content),
	})

	content = truncateForTokenLimit(content, cp.config.LLM.MaxTokens)
	prompt := BuildJobAnalysisPrompt(content, link)

	responseText, err := cp.complete(ctx, prompt)
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

	cp.logger.Info("Job analysis completed", map[string]interface{}{
		"link":            link,
		"job_title":       job.Title,
		"company":         job.Company,
		"processing_time": time.Since(startTime).String(),
	})
	return &job, nil
}

// ComposeCoverLetter writes a cover letter matching the profile against
// the job.
func (cp *ClaudeProvider) ComposeCoverLetter(ctx context.Context, job *models.JobDetails, profile *models.Profile) (*models.CoverLetterResponse, error) {
	startTime := time.Now()

	prompt := BuildCoverLetterPrompt(job, profile)

	responseText, err := cp.complete(ctx, prompt)
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

	cp.logger.Info("Cover letter composed", map[string]interface{}{
		"job_title":       job.Title,
		"company":         job.Company,
		"touchpoints":     len(letter.Touchpoints),
		"processing_time": time.Since(startTime).String(),
	})
	return &letter, nil
}

// complete sends a single user prompt to Claude and returns the text of
// the response.
func (cp *ClaudeProvider) complete(ctx context.Context, prompt string) (string, error) {
	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaude3_7SonnetLatest,
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}

	if responseText == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}
	return responseText, nil
}

// IsHealthy checks if the Claude provider is available.
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude3_7SonnetLatest,
		MaxTokens: 500,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}
	return nil
}

// Name returns the provider identifier.
func (cp *ClaudeProvider) Name() string {
	return "claude"
}

// truncateForTokenLimit caps content length using a rough 3 chars per
// token estimate.
func truncateForTokenLimit(content string, maxTokens int) string {
	maxContentLength := maxTokens * 3
	if len(content) > maxContentLength {
		return content[:maxContentLength] + "..."
	}
	return content
}
