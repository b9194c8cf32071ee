package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orbaps/Recruit-AI-1/config"
	"github.com/orbaps/Recruit-AI-1/infrastructure"
	"github.com/orbaps/Recruit-AI-1/interfaces"
	"github.com/orbaps/Recruit-AI-1/pipeline"
	"github.com/orbaps/Recruit-AI-1/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	db, err := infrastructure.NewMySQLConnection(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	store := infrastructure.NewStore(db)

	queue, err := infrastructure.NewBatchQueue(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Fatal("connect RabbitMQ", zap.Error(err))
	}
	defer queue.Close()

	registry := providers.NewRegistry(nil)
	extractor := infrastructure.NewExtractor(logger)
	orchestrator := pipeline.New(store, registry, extractor, logger)

	// Worker consumer: one batch at a time, resumes strictly sequential.
	err = queue.Consume(func(msg infrastructure.BatchMessage) {
		runBatch(context.Background(), msg, cfg, store, orchestrator, logger)
	})
	if err != nil {
		logger.Fatal("start batch consumer", zap.Error(err))
	}

	router := gin.Default()
	interfaces.NewHTTPHandler(router, store, queue, registry, cfg, logger)

	logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := router.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func runBatch(ctx context.Context, msg infrastructure.BatchMessage, cfg *config.Config, store *infrastructure.Store, orchestrator *pipeline.Orchestrator, logger *zap.Logger) {
	logger.Info("batch run received",
		zap.String("batch_id", msg.BatchID),
		zap.String("job_id", msg.JobID),
		zap.Int("uploads", len(msg.UploadIDs)),
		zap.String("provider", msg.Provider),
	)

	job, err := store.GetJob(msg.JobID)
	if err != nil {
		logger.Error("load job failed", zap.String("batch_id", msg.BatchID), zap.Error(err))
		return
	}
	run, err := store.GetBatchRun(msg.BatchID)
	if err != nil {
		logger.Error("load batch run failed", zap.String("batch_id", msg.BatchID), zap.Error(err))
		return
	}
	uploads, err := store.GetUploads(msg.UploadIDs)
	if err != nil {
		logger.Error("load uploads failed", zap.String("batch_id", msg.BatchID), zap.Error(err))
		return
	}

	items := make([]pipeline.ResumeItem, 0, len(uploads))
	for _, upload := range uploads {
		items = append(items, pipeline.ResumeItem{
			ResumeID: upload.ID,
			FileName: upload.FileName,
			Data:     upload.Data,
		})
	}

	settings := pipeline.Settings{
		Vendor:      msg.Provider,
		APIKey:      cfg.APIKey(msg.Provider),
		Model:       msg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	result, err := orchestrator.Run(ctx, run, *job, items, settings, func(processed, total int) {
		logger.Info("batch progress",
			zap.String("batch_id", msg.BatchID),
			zap.Int("processed", processed),
			zap.Int("total", total),
		)
	})
	if err != nil {
		logger.Error("batch run failed", zap.String("batch_id", msg.BatchID), zap.Error(err))
		return
	}

	for _, failure := range result.Failures {
		logger.Warn("resume failed",
			zap.String("batch_id", msg.BatchID),
			zap.String("file_name", failure.FileName),
			zap.Error(failure.Err),
		)
	}
	logger.Info("batch run completed",
		zap.String("batch_id", msg.BatchID),
		zap.Int("succeeded", len(result.Records)),
		zap.Int("attempted", result.Run.ProcessedCount),
	)
}

