package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/orbaps/Recruit-AI-1/analysis"
	"github.com/orbaps/Recruit-AI-1/domain"
	"github.com/orbaps/Recruit-AI-1/providers"
)

// Store is the slice of persistence the orchestrator needs. Implementations
// must report failures as *domain.PersistenceError so the run can tell fatal
// storage trouble apart from skippable per-item errors.
type Store interface {
	SaveEvaluation(rec domain.EvaluationRecord) error
	SaveBatchRun(run *domain.BatchRun) error
}

// Completer performs one LLM call for the chosen vendor.
type Completer interface {
	Complete(ctx context.Context, vendor string, req providers.Request) (string, error)
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	ExtractText(fileName string, data []byte) (string, error)
}

// ResumeItem is one uploaded resume queued for evaluation.
type ResumeItem struct {
	ResumeID string
	FileName string
	Data     []byte
}

// ItemFailure records one resume the run skipped, keyed by file name for
// user-facing reporting.
type ItemFailure struct {
	FileName string `json:"file_name"`
	Err      error  `json:"-"`
}

// Progress receives (processed, total) after every item, failures included.
type Progress func(processed, total int)

// Settings selects the vendor and sampling knobs for a whole run.
type Settings struct {
	Vendor      string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// BatchResult is the outcome of one run. Records holds only the evaluations
// that were produced and persisted; skipped items appear in Failures instead.
type BatchResult struct {
	Run      *domain.BatchRun
	Records  []domain.EvaluationRecord
	Failures []ItemFailure
}

// Orchestrator drives resumes through the evaluation pipeline one at a time.
// Sequential processing is deliberate: provider rate limits make fan-out
// counterproductive, and it keeps progress monotonic.
type Orchestrator struct {
	store     Store
	llm       Completer
	extractor TextExtractor
	logger    *zap.Logger
}

func New(store Store, llm Completer, extractor TextExtractor, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{store: store, llm: llm, extractor: extractor, logger: logger}
}

// ErrEmptyBatch is returned when a run has nothing to process.
var ErrEmptyBatch = errors.New("batch contains no resumes")

// Run processes every item against the given posting. One item failing is
// reported and skipped; only storage failures abort the run. The context is
// checked before each item so a caller can stop cleanly between resumes; an
// in-flight provider call is never interrupted mid-item.
func (o *Orchestrator) Run(ctx context.Context, run *domain.BatchRun, job domain.JobPosting, items []ResumeItem, settings Settings, progress Progress) (*BatchResult, error) {
	if run == nil {
		run = domain.NewBatchRun(job.ID, len(items))
	}
	run.TotalResumes = len(items)

	if len(items) == 0 {
		run.Status = domain.BatchStatusFailed
		now := time.Now()
		run.CompletedAt = &now
		if err := o.store.SaveBatchRun(run); err != nil {
			return nil, err
		}
		return nil, ErrEmptyBatch
	}

	started := time.Now()
	run.StartedAt = &started
	run.Status = domain.BatchStatusProcessing
	if err := o.store.SaveBatchRun(run); err != nil {
		return nil, err
	}

	result := &BatchResult{Run: run}

	for _, item := range items {
		if ctx.Err() != nil {
			o.logger.Info("batch run stopped before next item",
				zap.String("batch_id", run.ID),
				zap.Int("processed", run.ProcessedCount),
			)
			break
		}

		rec, err := o.processItem(ctx, job, item, settings)
		if err != nil {
			var perr *domain.PersistenceError
			if errors.As(err, &perr) {
				run.Status = domain.BatchStatusFailed
				// Best effort: the store is already failing.
				_ = o.store.SaveBatchRun(run)
				return nil, err
			}
			o.logger.Warn("resume skipped",
				zap.String("batch_id", run.ID),
				zap.String("file_name", item.FileName),
				zap.Error(err),
			)
			result.Failures = append(result.Failures, ItemFailure{FileName: item.FileName, Err: err})
		} else {
			result.Records = append(result.Records, *rec)
		}

		run.ProcessedCount++
		if err := o.store.SaveBatchRun(run); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(run.ProcessedCount, run.TotalResumes)
		}
	}

	completed := time.Now()
	run.CompletedAt = &completed
	run.Status = domain.BatchStatusCompleted
	if err := o.store.SaveBatchRun(run); err != nil {
		return nil, err
	}

	o.logger.Info("batch run finished",
		zap.String("batch_id", run.ID),
		zap.String("job_id", job.ID),
		zap.Int("succeeded", len(result.Records)),
		zap.Int("attempted", run.ProcessedCount),
		zap.Int("failed", len(result.Failures)),
	)
	return result, nil
}

func (o *Orchestrator) processItem(ctx context.Context, job domain.JobPosting, item ResumeItem, settings Settings) (*domain.EvaluationRecord, error) {
	text, err := o.extractor.ExtractText(item.FileName, item.Data)
	if err != nil {
		return nil, err
	}

	prompt := analysis.BuildPrompt(text, job.Requirements)
	raw, err := o.llm.Complete(ctx, settings.Vendor, providers.Request{
		APIKey:      settings.APIKey,
		Model:       settings.Model,
		Prompt:      prompt,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	})
	if err != nil {
		return nil, err
	}

	res := analysis.Parse(raw)
	if res == nil {
		o.logger.Debug("model reply not parseable, storing raw feedback",
			zap.String("file_name", item.FileName),
		)
	}

	rec := analysis.BuildRecord(item.ResumeID, job.ID, item.FileName, analysis.CandidateName(text), res, raw, time.Now())
	if err := o.store.SaveEvaluation(rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
