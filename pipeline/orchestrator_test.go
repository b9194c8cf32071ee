package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orbaps/Recruit-AI-1/domain"
	"github.com/orbaps/Recruit-AI-1/providers"
)

// fakeStore keeps evaluations keyed by id, mimicking the upsert semantics of
// the real store.
type fakeStore struct {
	evaluations map[string]domain.EvaluationRecord
	runs        map[string]domain.BatchRun
	failSaves   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		evaluations: make(map[string]domain.EvaluationRecord),
		runs:        make(map[string]domain.BatchRun),
	}
}

func (s *fakeStore) SaveEvaluation(rec domain.EvaluationRecord) error {
	if s.failSaves {
		return &domain.PersistenceError{Op: "save evaluation", Err: errors.New("disk full")}
	}
	s.evaluations[rec.ID] = rec
	return nil
}

func (s *fakeStore) SaveBatchRun(run *domain.BatchRun) error {
	s.runs[run.ID] = *run
	return nil
}

// stubCompleter maps file-specific prompts to canned replies via a callback.
type stubCompleter struct {
	replies func(prompt string) (string, error)
	calls   int
}

func (c *stubCompleter) Complete(_ context.Context, _ string, req providers.Request) (string, error) {
	c.calls++
	return c.replies(req.Prompt)
}

type stubExtractor struct{}

func (stubExtractor) ExtractText(fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", &domain.ExtractionError{FileName: fileName, Err: errors.New("document contains no extractable text")}
	}
	return string(data), nil
}

func testJob() domain.JobPosting {
	return domain.JobPosting{
		ID:           "J1",
		Title:        "Data Engineer",
		Requirements: "Needs Python and SQL skills, 2 years experience",
		Status:       domain.JobStatusActive,
	}
}

func testItems(n int) []ResumeItem {
	items := make([]ResumeItem, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("candidate%d.txt", i)
		items = append(items, ResumeItem{
			ResumeID: domain.NewResumeID(name),
			FileName: name,
			Data:     []byte(fmt.Sprintf("Jane Doe\nSkills: Python, SQL\nResume %d", i)),
		})
	}
	return items
}

func testSettings() Settings {
	return Settings{Vendor: providers.OpenAI, APIKey: "key", Model: "gpt-4o-mini", MaxTokens: 3000, Temperature: 0.7}
}

const structuredReply = `{"overall_score": 82, "sections": [{"section_name": "Skills", "score": 9}], "strengths": ["Python"], "weaknesses": [], "missing_skills": [], "overall_recommendation": "Strong fit"}`

func TestRunProcessesAllItems(t *testing.T) {
	store := newFakeStore()
	llm := &stubCompleter{replies: func(string) (string, error) { return structuredReply, nil }}
	o := New(store, llm, stubExtractor{}, zap.NewNop())

	var progress [][2]int
	result, err := o.Run(context.Background(), nil, testJob(), testItems(3), testSettings(), func(processed, total int) {
		progress = append(progress, [2]int{processed, total})
	})
	require.NoError(t, err)

	assert.Len(t, result.Records, 3)
	assert.Empty(t, result.Failures)
	assert.Equal(t, domain.BatchStatusCompleted, result.Run.Status)
	assert.Equal(t, 3, result.Run.ProcessedCount)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
	assert.NotNil(t, result.Run.StartedAt)
	assert.NotNil(t, result.Run.CompletedAt)

	rec := result.Records[0]
	assert.Equal(t, 82.0, rec.OverallScore)
	assert.Equal(t, 90.0, rec.SkillsMatch)
	assert.Zero(t, rec.ExperienceMatch)
	assert.Zero(t, rec.EducationMatch)
	assert.Equal(t, "Jane Doe", rec.CandidateName)
}

func TestRunIsolatesProviderFailure(t *testing.T) {
	store := newFakeStore()
	llm := &stubCompleter{replies: func(prompt string) (string, error) {
		if containsResume(prompt, 1) {
			return "", &domain.ProviderError{Vendor: providers.OpenAI, Err: errors.New("rate limited")}
		}
		return structuredReply, nil
	}}
	o := New(store, llm, stubExtractor{}, zap.NewNop())

	result, err := o.Run(context.Background(), nil, testJob(), testItems(3), testSettings(), nil)
	require.NoError(t, err)

	assert.Len(t, result.Records, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "candidate1.txt", result.Failures[0].FileName)

	var perr *domain.ProviderError
	assert.ErrorAs(t, result.Failures[0].Err, &perr)

	// Failures still advance the processed count and the run completes.
	assert.Equal(t, 3, result.Run.ProcessedCount)
	assert.Equal(t, domain.BatchStatusCompleted, result.Run.Status)
	assert.Len(t, store.evaluations, 2)
}

func TestRunIsolatesExtractionFailure(t *testing.T) {
	store := newFakeStore()
	llm := &stubCompleter{replies: func(string) (string, error) { return structuredReply, nil }}
	o := New(store, llm, stubExtractor{}, zap.NewNop())

	items := testItems(2)
	items[0].Data = nil // unreadable document

	result, err := o.Run(context.Background(), nil, testJob(), items, testSettings(), nil)
	require.NoError(t, err)

	assert.Len(t, result.Records, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "candidate0.txt", result.Failures[0].FileName)
	var xerr *domain.ExtractionError
	assert.ErrorAs(t, result.Failures[0].Err, &xerr)

	// The failed item reached no provider call and left no partial state.
	assert.Equal(t, 1, llm.calls)
	assert.Len(t, store.evaluations, 1)
}

func TestRunRawFallbackStoresProse(t *testing.T) {
	store := newFakeStore()
	prose := "I could not produce JSON, but this candidate looks promising."
	llm := &stubCompleter{replies: func(string) (string, error) { return prose, nil }}
	o := New(store, llm, stubExtractor{}, zap.NewNop())

	result, err := o.Run(context.Background(), nil, testJob(), testItems(1), testSettings(), nil)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Zero(t, rec.OverallScore)
	assert.Zero(t, rec.SkillsMatch)
	assert.Equal(t, prose, rec.Feedback)
}

func TestRunPersistenceFailureAbortsRun(t *testing.T) {
	store := newFakeStore()
	store.failSaves = true
	llm := &stubCompleter{replies: func(string) (string, error) { return structuredReply, nil }}
	o := New(store, llm, stubExtractor{}, zap.NewNop())

	_, err := o.Run(context.Background(), nil, testJob(), testItems(3), testSettings(), nil)

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	// The run stops on the first resume instead of grinding through the rest.
	assert.Equal(t, 1, llm.calls)
}

func TestRunEmptyBatchFails(t *testing.T) {
	store := newFakeStore()
	llm := &stubCompleter{replies: func(string) (string, error) { return structuredReply, nil }}
	o := New(store, llm, stubExtractor{}, zap.NewNop())

	_, err := o.Run(context.Background(), nil, testJob(), nil, testSettings(), nil)
	require.ErrorIs(t, err, ErrEmptyBatch)

	require.Len(t, store.runs, 1)
	for _, run := range store.runs {
		assert.Equal(t, domain.BatchStatusFailed, run.Status)
	}
}

func TestRunStopsBetweenItemsOnCancellation(t *testing.T) {
	store := newFakeStore()
	ctx, cancel := context.WithCancel(context.Background())
	llm := &stubCompleter{replies: func(string) (string, error) {
		cancel() // cancel while an item is in flight
		return structuredReply, nil
	}}
	o := New(store, llm, stubExtractor{}, zap.NewNop())

	result, err := o.Run(ctx, nil, testJob(), testItems(3), testSettings(), nil)
	require.NoError(t, err)

	// The in-flight item finished; no further item started.
	assert.Equal(t, 1, llm.calls)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, 1, result.Run.ProcessedCount)
}

func TestRunReprocessingIsIdempotent(t *testing.T) {
	store := newFakeStore()
	llm := &stubCompleter{replies: func(string) (string, error) { return structuredReply, nil }}
	o := New(store, llm, stubExtractor{}, zap.NewNop())

	items := testItems(2)
	_, err := o.Run(context.Background(), nil, testJob(), items, testSettings(), nil)
	require.NoError(t, err)
	_, err = o.Run(context.Background(), nil, testJob(), items, testSettings(), nil)
	require.NoError(t, err)

	// Two consecutive runs over the same files leave one record per resume.
	assert.Len(t, store.evaluations, 2)
}

func containsResume(prompt string, n int) bool {
	return strings.Contains(prompt, fmt.Sprintf("Resume %d", n))
}
