package handlers

import (
	"net/http"
	"time"

	"supply-demand/internal/analysis"
	"supply-demand/internal/api/models"
	"supply-demand/internal/config"
	"supply-demand/internal/logger"
	"supply-demand/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EvaluateHandler handles single-frame evaluation
type EvaluateHandler struct {
	cfg *config.Config
	log *logger.Log
}

// NewEvaluateHandler creates a new evaluate handler
func NewEvaluateHandler(cfg *config.Config, log *logger.Log) *EvaluateHandler {
	return &EvaluateHandler{cfg: cfg, log: log}
}

// Evaluate handles POST /api/v1/evaluate
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	in, name, err := resolveInputs(h.cfg, req.Scenario, req.Inputs)
	if err != nil {
		inputError(c, err)
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = h.cfg.Report.Mode
	}
	m, err := report.ParseMode(mode)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_MODE", err)
		return
	}
	engine, err := engineFor(h.cfg, req.Reference)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REFERENCE", err)
		return
	}

	start := time.Now()
	frame := engine.Evaluate(in)
	id := uuid.NewString()
	logger.LogPerformanceEntry(h.log.WithFields(logger.Fields{"id": id, "scenario": name}), "api", "evaluate", time.Since(start), nil)

	c.JSON(http.StatusOK, models.EvaluateResponse{
		ID:                    id,
		Scenario:              name,
		Frame:                 frame,
		ShowPolicyEquilibrium: frame.ShowPolicyEquilibrium(),
		Incidence:             analysis.Incidence(frame),
		Report:                report.Describe(frame, m),
		Annotations:           report.Annotations(frame),
	})
}
