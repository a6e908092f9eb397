package orchestrator

import (
	"context"
	"strings"
	"sync"
	"time"

	"letterforge/internal/logging"
	"letterforge/pkg/models"
	"letterforge/pkg/utils"
)

// State is the generator session state.
type State string

const (
	StateIdle       State = "idle"
	StateAnalyzing  State = "analyzing"
	StateAnalyzed   State = "analyzed"
	StateGenerating State = "generating"
	StateGenerated  State = "generated"
)

// User-facing failure messages. Callers never see the underlying cause.
const (
	AnalysisFailedMessage   = "We couldn't extract details from that link. Try a direct job posting URL."
	GenerationFailedMessage = "Failed to generate cover letter. Please try again."
)

// JobAnalyzer turns a job link into structured job details.
type JobAnalyzer interface {
	Analyze(ctx context.Context, link string, opts *models.AnalyzeOptions) (*models.JobDetails, error)
}

// LetterGenerator composes a cover letter from job details and a profile.
type LetterGenerator interface {
	ComposeCoverLetter(ctx context.Context, job *models.JobDetails, profile *models.Profile) (*models.CoverLetterResponse, error)
}

// ProfileSource resolves the currently selected profile.
type ProfileSource interface {
	Active() *models.Profile
}

// ApplicationSaver persists a tracked application.
type ApplicationSaver interface {
	Insert(ctx context.Context, record models.ApplicationRecord) error
}

// Session is the generator workflow state machine. A session holds at
// most one in-flight operation; submissions while analyzing or
// generating are rejected. A failed operation overlays an error message
// and settles back into the stable state its data still supports.
type Session struct {
	analyzer  JobAnalyzer
	generator LetterGenerator
	profiles  ProfileSource
	tracker   ApplicationSaver
	logger    logging.Logger

	mu         sync.Mutex
	state      State
	jobLink    string
	jobDetails *models.JobDetails
	result     *models.CoverLetterResponse
	errMessage string
}

// NewSession creates an idle generator session.
func NewSession(analyzer JobAnalyzer, generator LetterGenerator, profiles ProfileSource, tracker ApplicationSaver) *Session {
	return &Session{
		analyzer:  analyzer,
		generator: generator,
		profiles:  profiles,
		tracker:   tracker,
		logger:    logging.GetGlobalLogger().WithField("component", "generator_session"),
		state:     StateIdle,
	}
}

// SubmitLink analyzes a job link. Previously analyzed details and any
// generated letter are discarded when the new analysis starts. An empty
// link is ignored.
func (s *Session) SubmitLink(ctx context.Context, link string, opts *models.AnalyzeOptions) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil
	}

	s.mu.Lock()
	if s.state == StateAnalyzing || s.state == StateGenerating {
		s.mu.Unlock()
		return utils.NewBadRequestError("another operation is already in progress")
	}
	s.state = StateAnalyzing
	s.jobLink = link
	s.jobDetails = nil
	s.result = nil
	s.errMessage = ""
	s.mu.Unlock()

	details, err := s.analyzer.Analyze(ctx, link, opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Job link analysis failed", map[string]interface{}{
			"link":  link,
			"error": err.Error(),
		})
		s.errMessage = AnalysisFailedMessage
		s.settle()
		return err
	}

	s.jobDetails = details
	s.state = StateAnalyzed
	return nil
}

// SubmitGenerate composes a cover letter for the analyzed job using the
// active profile. Without analyzed details or an active profile the call
// is a no-op.
func (s *Session) SubmitGenerate(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateAnalyzing || s.state == StateGenerating {
		s.mu.Unlock()
		return utils.NewBadRequestError("another operation is already in progress")
	}

	profile := s.profiles.Active()
	if s.jobDetails == nil || profile == nil {
		s.mu.Unlock()
		return nil
	}

	details := s.jobDetails
	s.state = StateGenerating
	s.result = nil
	s.errMessage = ""
	s.mu.Unlock()

	result, err := s.generator.ComposeCoverLetter(ctx, details, profile)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Cover letter generation failed", map[string]interface{}{
			"job_title": details.Title,
			"company":   details.Company,
			"error":     err.Error(),
		})
		s.errMessage = GenerationFailedMessage
		s.settle()
		return utils.NewGenerationError(err.Error())
	}

	s.result = result
	s.state = StateGenerated
	return nil
}

// SaveToTracker records the generated letter as a tracked application.
// Saving the same result repeatedly creates one record per call. Without
// a generated letter the call is a no-op; the session state does not
// change either way.
func (s *Session) SaveToTracker(ctx context.Context) (*models.ApplicationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil || s.jobDetails == nil {
		return nil, nil
	}

	record := models.ApplicationRecord{
		ID:          utils.GenerateRecordID(),
		JobTitle:    s.jobDetails.Title,
		Company:     s.jobDetails.Company,
		Status:      models.StatusApplied,
		DateCreated: time.Now().UTC(),
		CoverLetter: s.result.Content,
		Touchpoints: s.result.Touchpoints,
		JobLink:     s.jobLink,
	}

	if err := s.tracker.Insert(ctx, record); err != nil {
		return nil, utils.NewInternalServerError("failed to save application: " + err.Error())
	}

	s.logger.Info("Application saved to tracker", map[string]interface{}{
		"record_id": record.ID,
		"job_title": record.JobTitle,
		"company":   record.Company,
	})
	return &record, nil
}

// Reset clears the session back to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAnalyzing || s.state == StateGenerating {
		return
	}
	s.state = StateIdle
	s.jobLink = ""
	s.jobDetails = nil
	s.result = nil
	s.errMessage = ""
}

// Snapshot returns the current session state for clients.
func (s *Session) Snapshot() models.SessionStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.SessionStateResponse{
		State:      string(s.state),
		JobLink:    s.jobLink,
		JobDetails: s.jobDetails,
		Result:     s.result,
		Error:      s.errMessage,
	}
}

// settle moves the session to the stable state its data still supports
// after a failed operation. Caller holds s.mu.
func (s *Session) settle() {
	switch {
	case s.result != nil:
		s.state = StateGenerated
	case s.jobDetails != nil:
		s.state = StateAnalyzed
	default:
		s.state = StateIdle
	}
}
