package infrastructure

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orbaps/Recruit-AI-1/domain"
)

// NewMySQLConnection opens the database and migrates the schema. The foreign
// keys from evaluations and batch runs to job postings are part of the schema,
// so a record can never reference a missing posting.
func NewMySQLConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.JobPosting{},
		&domain.ResumeUpload{},
		&domain.EvaluationRecord{},
		&domain.BatchRun{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// Store is the persistence layer for postings, uploads, evaluations and batch
// runs. Every write is one short transaction; reads never hold locks across
// calls, so a dashboard can query while a batch run is writing.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveJob upserts a posting by id.
func (s *Store) SaveJob(job domain.JobPosting) error {
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&job).Error
	if err != nil {
		return &domain.PersistenceError{Op: "save job", Err: err}
	}
	return nil
}

// ListJobs returns every posting, newest first.
func (s *Store) ListJobs() ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	if err := s.db.Order("created_date DESC").Find(&jobs).Error; err != nil {
		return nil, &domain.PersistenceError{Op: "list jobs", Err: err}
	}
	return jobs, nil
}

// GetJob loads one posting by id.
func (s *Store) GetJob(id string) (*domain.JobPosting, error) {
	var job domain.JobPosting
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, &domain.PersistenceError{Op: "get job", Err: err}
	}
	return &job, nil
}

// SaveEvaluation upserts one evaluation keyed by its deterministic id, so
// re-evaluating a resume replaces the previous row instead of duplicating it.
func (s *Store) SaveEvaluation(rec domain.EvaluationRecord) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&rec).Error
	})
	if err != nil {
		return &domain.PersistenceError{Op: "save evaluation", Err: err}
	}
	return nil
}

// ListEvaluationsForJob returns the evaluations for one posting ranked by
// overall score, best first.
func (s *Store) ListEvaluationsForJob(jobID string) ([]domain.EvaluationRecord, error) {
	var recs []domain.EvaluationRecord
	err := s.db.Where("job_id = ?", jobID).Order("overall_score DESC").Find(&recs).Error
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list evaluations", Err: err}
	}
	return recs, nil
}

// SaveUpload upserts an uploaded resume document by its stable id.
func (s *Store) SaveUpload(upload domain.ResumeUpload) error {
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&upload).Error
	if err != nil {
		return &domain.PersistenceError{Op: "save upload", Err: err}
	}
	return nil
}

// GetUploads loads the given uploads preserving the requested order.
func (s *Store) GetUploads(ids []string) ([]domain.ResumeUpload, error) {
	var uploads []domain.ResumeUpload
	if err := s.db.Where("id IN ?", ids).Find(&uploads).Error; err != nil {
		return nil, &domain.PersistenceError{Op: "get uploads", Err: err}
	}

	byID := make(map[string]domain.ResumeUpload, len(uploads))
	for _, u := range uploads {
		byID[u.ID] = u
	}
	ordered := make([]domain.ResumeUpload, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}

// SaveBatchRun upserts the bookkeeping row for a run.
func (s *Store) SaveBatchRun(run *domain.BatchRun) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(run).Error
	})
	if err != nil {
		return &domain.PersistenceError{Op: "save batch run", Err: err}
	}
	return nil
}

// GetBatchRun loads one run by id.
func (s *Store) GetBatchRun(id string) (*domain.BatchRun, error) {
	var run domain.BatchRun
	if err := s.db.First(&run, "id = ?", id).Error; err != nil {
		return nil, &domain.PersistenceError{Op: "get batch run", Err: err}
	}
	return &run, nil
}
