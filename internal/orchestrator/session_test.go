package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letterforge/pkg/models"
)

type fakeAnalyzer struct {
	details *models.JobDetails
	err     error
	calls   int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string, _ *models.AnalyzeOptions) (*models.JobDetails, error) {
	f.calls++
	return f.details, f.err
}

type fakeGenerator struct {
	result *models.CoverLetterResponse
	err    error
	calls  int
}

func (f *fakeGenerator) ComposeCoverLetter(_ context.Context, _ *models.JobDetails, _ *models.Profile) (*models.CoverLetterResponse, error) {
	f.calls++
	return f.result, f.err
}

type fakeProfiles struct {
	active *models.Profile
}

func (f *fakeProfiles) Active() *models.Profile { return f.active }

type fakeTracker struct {
	records []models.ApplicationRecord
	err     error
}

func (f *fakeTracker) Insert(_ context.Context, record models.ApplicationRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func testJob() *models.JobDetails {
	return &models.JobDetails{
		Title:        "Senior Go Engineer",
		Company:      "Acme",
		Requirements: []string{"Go"},
		Summary:      "Build the platform.",
	}
}

func testLetter() *models.CoverLetterResponse {
	return &models.CoverLetterResponse{
		Content:     "Dear hiring team,",
		Touchpoints: []string{"Go expertise"},
		Suggestions: []string{"Mention OSS work"},
	}
}

func testProfile() *models.Profile {
	return &models.Profile{ID: "p1", Name: "Backend", Skills: []string{"Go"}}
}

func newTestSession(a *fakeAnalyzer, g *fakeGenerator, p *fakeProfiles, tr *fakeTracker) *Session {
	if a == nil {
		a = &fakeAnalyzer{details: testJob()}
	}
	if g == nil {
		g = &fakeGenerator{result: testLetter()}
	}
	if p == nil {
		p = &fakeProfiles{active: testProfile()}
	}
	if tr == nil {
		tr = &fakeTracker{}
	}
	return NewSession(a, g, p, tr)
}

func TestSession_FullHappyPath(t *testing.T) {
	ctx := context.Background()
	tracker := &fakeTracker{}
	s := newTestSession(nil, nil, nil, tracker)

	require.NoError(t, s.SubmitLink(ctx, "https://jobs.example.com/123", nil))
	snap := s.Snapshot()
	assert.Equal(t, string(StateAnalyzed), snap.State)
	require.NotNil(t, snap.JobDetails)
	assert.Equal(t, "Acme", snap.JobDetails.Company)

	require.NoError(t, s.SubmitGenerate(ctx))
	snap = s.Snapshot()
	assert.Equal(t, string(StateGenerated), snap.State)
	require.NotNil(t, snap.Result)

	record, err := s.SaveToTracker(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Senior Go Engineer", record.JobTitle)
	assert.Equal(t, models.StatusApplied, record.Status)
	assert.Equal(t, "https://jobs.example.com/123", record.JobLink)
	assert.Len(t, tracker.records, 1)

	// The result stays visible after saving
	snap = s.Snapshot()
	assert.Equal(t, string(StateGenerated), snap.State)
	assert.NotNil(t, snap.Result)
}

func TestSession_AnalysisFailureOverlaysErrorAndReturnsToIdle(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(&fakeAnalyzer{err: errors.New("scrape blew up")}, nil, nil, nil)

	err := s.SubmitLink(ctx, "https://jobs.example.com/123", nil)
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, string(StateIdle), snap.State)
	assert.Equal(t, AnalysisFailedMessage, snap.Error)
	// The entered link survives the failure
	assert.Equal(t, "https://jobs.example.com/123", snap.JobLink)
	assert.Nil(t, snap.JobDetails)
}

func TestSession_GenerationFailureReturnsToAnalyzed(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(nil, &fakeGenerator{err: errors.New("model unavailable")}, nil, nil)

	require.NoError(t, s.SubmitLink(ctx, "https://jobs.example.com/123", nil))
	err := s.SubmitGenerate(ctx)
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, string(StateAnalyzed), snap.State)
	assert.Equal(t, GenerationFailedMessage, snap.Error)
	// Analyzed details survive a failed generation
	require.NotNil(t, snap.JobDetails)
	assert.Nil(t, snap.Result)
}

func TestSession_EmptyLinkIsNoOp(t *testing.T) {
	ctx := context.Background()
	a := &fakeAnalyzer{details: testJob()}
	s := newTestSession(a, nil, nil, nil)

	require.NoError(t, s.SubmitLink(ctx, "   ", nil))
	assert.Zero(t, a.calls)
	assert.Equal(t, string(StateIdle), s.Snapshot().State)
}

func TestSession_NewLinkClearsPreviousResults(t *testing.T) {
	ctx := context.Background()
	a := &fakeAnalyzer{details: testJob()}
	s := newTestSession(a, nil, nil, nil)

	require.NoError(t, s.SubmitLink(ctx, "https://jobs.example.com/1", nil))
	require.NoError(t, s.SubmitGenerate(ctx))
	require.NotNil(t, s.Snapshot().Result)

	a.err = errors.New("second link broken")
	a.details = nil
	_ = s.SubmitLink(ctx, "https://jobs.example.com/2", nil)

	snap := s.Snapshot()
	// Old details and letter are gone; the failed analysis settles on idle
	assert.Nil(t, snap.JobDetails)
	assert.Nil(t, snap.Result)
	assert.Equal(t, string(StateIdle), snap.State)
	assert.Equal(t, "https://jobs.example.com/2", snap.JobLink)
}

func TestSession_GenerateWithoutDetailsIsNoOp(t *testing.T) {
	ctx := context.Background()
	g := &fakeGenerator{result: testLetter()}
	s := newTestSession(nil, g, nil, nil)

	require.NoError(t, s.SubmitGenerate(ctx))
	assert.Zero(t, g.calls)
	assert.Equal(t, string(StateIdle), s.Snapshot().State)
}

func TestSession_GenerateWithoutActiveProfileIsNoOp(t *testing.T) {
	ctx := context.Background()
	g := &fakeGenerator{result: testLetter()}
	s := newTestSession(nil, g, &fakeProfiles{active: nil}, nil)

	require.NoError(t, s.SubmitLink(ctx, "https://jobs.example.com/123", nil))
	require.NoError(t, s.SubmitGenerate(ctx))

	assert.Zero(t, g.calls)
	assert.Equal(t, string(StateAnalyzed), s.Snapshot().State)
}

func TestSession_SaveWithoutResultIsNoOp(t *testing.T) {
	ctx := context.Background()
	tracker := &fakeTracker{}
	s := newTestSession(nil, nil, nil, tracker)

	record, err := s.SaveToTracker(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Empty(t, tracker.records)
}

func TestSession_DuplicateSavesCreateDistinctRecords(t *testing.T) {
	ctx := context.Background()
	tracker := &fakeTracker{}
	s := newTestSession(nil, nil, nil, tracker)

	require.NoError(t, s.SubmitLink(ctx, "https://jobs.example.com/123", nil))
	require.NoError(t, s.SubmitGenerate(ctx))

	first, err := s.SaveToTracker(ctx)
	require.NoError(t, err)
	second, err := s.SaveToTracker(ctx)
	require.NoError(t, err)

	require.Len(t, tracker.records, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.JobTitle, second.JobTitle)
}

func TestSession_ResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(nil, nil, nil, nil)

	require.NoError(t, s.SubmitLink(ctx, "https://jobs.example.com/123", nil))
	require.NoError(t, s.SubmitGenerate(ctx))

	s.Reset()
	snap := s.Snapshot()
	assert.Equal(t, string(StateIdle), snap.State)
	assert.Empty(t, snap.JobLink)
	assert.Nil(t, snap.JobDetails)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.Error)
}

func TestSession_SuccessfulAnalysisClearsPreviousError(t *testing.T) {
	ctx := context.Background()
	a := &fakeAnalyzer{err: errors.New("first attempt failed")}
	s := newTestSession(a, nil, nil, nil)

	_ = s.SubmitLink(ctx, "https://jobs.example.com/123", nil)
	require.Equal(t, AnalysisFailedMessage, s.Snapshot().Error)

	a.err = nil
	a.details = testJob()
	require.NoError(t, s.SubmitLink(ctx, "https://jobs.example.com/123", nil))

	snap := s.Snapshot()
	assert.Empty(t, snap.Error)
	assert.Equal(t, string(StateAnalyzed), snap.State)
}
