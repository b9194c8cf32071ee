package interfaces

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orbaps/Recruit-AI-1/config"
	"github.com/orbaps/Recruit-AI-1/domain"
	"github.com/orbaps/Recruit-AI-1/infrastructure"
	"github.com/orbaps/Recruit-AI-1/providers"
)

// HTTPHandler exposes the service surface consumed by the placement
// dashboard: manage postings, upload resumes and start a batch, poll a run,
// list ranked evaluations.
type HTTPHandler struct {
	store    *infrastructure.Store
	queue    *infrastructure.BatchQueue
	registry *providers.Registry
	cfg      *config.Config
	logger   *zap.Logger
}

func NewHTTPHandler(router *gin.Engine, store *infrastructure.Store, queue *infrastructure.BatchQueue, registry *providers.Registry, cfg *config.Config, logger *zap.Logger) {
	h := &HTTPHandler{store: store, queue: queue, registry: registry, cfg: cfg, logger: logger}

	router.POST("/jobs", h.CreateJob)
	router.GET("/jobs", h.ListJobs)
	router.POST("/jobs/:id/batches", h.StartBatch)
	router.GET("/jobs/:id/evaluations", h.ListEvaluations)
	router.GET("/batches/:id", h.GetBatchRun)
}

type createJobRequest struct {
	Title        string `json:"title" binding:"required"`
	Company      string `json:"company" binding:"required"`
	Location     string `json:"location"`
	Requirements string `json:"requirements" binding:"required"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
}

func (h *HTTPHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status == "" {
		req.Status = domain.JobStatusActive
	}
	if req.Priority == "" {
		req.Priority = domain.JobPriorityMedium
	}

	now := time.Now()
	job := domain.JobPosting{
		ID:           domain.NewJobID(req.Title, req.Company, now),
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Requirements: req.Requirements,
		CreatedDate:  now,
		Status:       req.Status,
		Priority:     req.Priority,
	}

	if err := h.store.SaveJob(job); err != nil {
		h.logger.Error("save job failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save job posting"})
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *HTTPHandler) ListJobs(c *gin.Context) {
	jobs, err := h.store.ListJobs()
	if err != nil {
		h.logger.Error("list jobs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list job postings"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// StartBatch stores the uploaded resume files and enqueues a batch run. The
// response returns immediately; progress is visible through GET /batches/:id.
func (h *HTTPHandler) StartBatch(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := h.store.GetJob(jobID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job posting not found"})
		return
	}

	vendor := c.DefaultPostForm("provider", h.cfg.DefaultProvider)
	if _, err := h.registry.Lookup(vendor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := c.DefaultPostForm("model", providers.DefaultModel(vendor))

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["resumes"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one resume file is required"})
		return
	}

	uploadIDs := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open " + header.Filename})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read " + header.Filename})
			return
		}

		upload := domain.ResumeUpload{
			ID:        domain.NewResumeID(header.Filename),
			FileName:  header.Filename,
			Data:      data,
			CreatedAt: time.Now(),
		}
		if err := h.store.SaveUpload(upload); err != nil {
			h.logger.Error("save upload failed", zap.String("file_name", header.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save " + header.Filename})
			return
		}
		uploadIDs = append(uploadIDs, upload.ID)
	}

	run := domain.NewBatchRun(jobID, len(uploadIDs))
	if err := h.store.SaveBatchRun(run); err != nil {
		h.logger.Error("save batch run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create batch run"})
		return
	}

	msg := infrastructure.BatchMessage{
		BatchID:   run.ID,
		JobID:     jobID,
		UploadIDs: uploadIDs,
		Provider:  vendor,
		Model:     model,
	}
	if err := h.queue.Publish(msg); err != nil {
		h.logger.Error("enqueue batch failed", zap.String("batch_id", run.ID), zap.Error(err))
		run.Status = domain.BatchStatusFailed
		_ = h.store.SaveBatchRun(run)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue batch run"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"batch_id": run.ID,
		"job_id":   jobID,
		"total":    run.TotalResumes,
		"provider": vendor,
		"model":    model,
		"status":   run.Status,
	})
}

func (h *HTTPHandler) ListEvaluations(c *gin.Context) {
	recs, err := h.store.ListEvaluationsForJob(c.Param("id"))
	if err != nil {
		h.logger.Error("list evaluations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list evaluations"})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *HTTPHandler) GetBatchRun(c *gin.Context) {
	run, err := h.store.GetBatchRun(c.Param("id"))
	if err != nil {
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load batch run"})
		return
	}
	c.JSON(http.StatusOK, run)
}
