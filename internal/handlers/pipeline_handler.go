package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/logger"
	"fundsync/internal/middleware"
	"fundsync/internal/pipeline"
)

// SyncRunner starts one sync run.
type SyncRunner interface {
	Run(ctx context.Context) (*pipeline.RunResult, error)
}

// PipelineHandler triggers sync runs over HTTP. Only one run is allowed at a
// time per process.
type PipelineHandler struct {
	runner SyncRunner
	mu     sync.Mutex
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(runner SyncRunner) *PipelineHandler {
	return &PipelineHandler{runner: runner}
}

// SyncResponse is the run summary returned by the trigger endpoint.
type SyncResponse struct {
	*pipeline.RunResult
	DurationMS int64 `json:"duration_ms"`
}

// TriggerSync handles POST /pipeline/sync. The run uses the request context,
// so a client that disconnects cancels the remaining work.
// @Summary     Trigger a sync run
// @Description Scrape the source report tabs, reconcile AMCs, categories and funds, then fill recent market caps
// @Tags        pipeline
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} SyncResponse "Run summary"
// @Failure     401 {object} ErrorResponse "Invalid or missing API key"
// @Failure     409 {object} ErrorResponse "A run is already in progress"
// @Failure     503 {object} ErrorResponse "Pipeline endpoints are not configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pipeline/sync [post]
func (h *PipelineHandler) TriggerSync(c *gin.Context) {
	if !h.mu.TryLock() {
		respondWithError(c, apperrors.ErrSyncInProgress)
		return
	}
	defer h.mu.Unlock()

	result, err := h.runner.Run(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Get().Infow("sync triggered over HTTP",
		"request_id", middleware.RequestID(c),
		"run_id", result.RunID,
		"errors", len(result.Errors),
	)
	c.JSON(http.StatusOK, SyncResponse{RunResult: result, DurationMS: result.Duration.Milliseconds()})
}
