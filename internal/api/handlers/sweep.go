package handlers

import (
	"errors"
	"net/http"

	"supply-demand/internal/analysis"
	"supply-demand/internal/api/models"
	"supply-demand/internal/cache"
	"supply-demand/internal/config"
	"supply-demand/internal/logger"
	"supply-demand/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SweepHandler handles comparative-statics sweeps
type SweepHandler struct {
	cfg   *config.Config
	log   *logger.Log
	cache *cache.Cache[[]analysis.SweepPoint]
}

// NewSweepHandler creates a new sweep handler. Results are cached when
// SWEEP_CACHE=true.
func NewSweepHandler(cfg *config.Config, log *logger.Log) *SweepHandler {
	return &SweepHandler{cfg: cfg, log: log, cache: cache.FromEnv[[]analysis.SweepPoint]()}
}

// Close stops the cache cleanup goroutine, if any.
func (h *SweepHandler) Close() {
	h.cache.Close()
}

// sweepKey identifies a sweep by everything that affects its points.
type sweepKey struct {
	Inputs    model.MarketInputs `json:"inputs"`
	Reference string             `json:"reference"`
	Param     string             `json:"param"`
	From      float64            `json:"from"`
	To        float64            `json:"to"`
	Step      float64            `json:"step"`
}

// Sweep handles POST /api/v1/sweep
func (h *SweepHandler) Sweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	in, _, err := resolveInputs(h.cfg, req.Scenario, req.Inputs)
	if err != nil {
		inputError(c, err)
		return
	}
	engine, err := engineFor(h.cfg, req.Reference)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REFERENCE", err)
		return
	}

	key, keyErr := cache.Key(sweepKey{
		Inputs:    in,
		Reference: string(engine.Reference),
		Param:     req.Param,
		From:      req.From,
		To:        req.To,
		Step:      req.Step,
	})
	if keyErr == nil {
		if points, ok := h.cache.Get(key); ok {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, models.SweepResponse{ID: uuid.NewString(), Param: req.Param, Points: points})
			return
		}
	}

	points, err := analysis.Sweep(engine, in, req.Param, req.From, req.To, req.Step)
	if err != nil {
		if errors.Is(err, analysis.ErrUnknownParameter) || errors.Is(err, analysis.ErrInvalidRange) {
			respondError(c, http.StatusBadRequest, "INVALID_SWEEP", err)
			return
		}
		h.log.WithError(err).Error("sweep failed")
		respondError(c, http.StatusInternalServerError, "SWEEP_ERROR", err)
		return
	}

	if keyErr == nil {
		h.cache.Set(key, points)
	}
	c.JSON(http.StatusOK, models.SweepResponse{
		ID:     uuid.NewString(),
		Param:  req.Param,
		Points: points,
	})
}
