package handlers

import (
	"net/http"

	"supply-demand/internal/api/models"
	"supply-demand/internal/config"
	"supply-demand/internal/logger"
	"supply-demand/internal/report"
	"supply-demand/internal/scenario"

	"github.com/gin-gonic/gin"
)

// ScenarioHandler handles scenario preset requests
type ScenarioHandler struct {
	cfg *config.Config
	log *logger.Log
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(cfg *config.Config, log *logger.Log) *ScenarioHandler {
	return &ScenarioHandler{cfg: cfg, log: log}
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	all := scenario.All()
	out := make([]models.ScenarioInfo, 0, len(all))
	for _, s := range all {
		in := scenario.Defaults()
		s.Apply(&in)
		out = append(out, models.ScenarioInfo{Name: s.Name(), Label: s.Label(), Inputs: in})
	}
	h.log.WithComponent("api").Debugf("returning %d scenarios", len(out))
	c.JSON(http.StatusOK, gin.H{"scenarios": out})
}

// GetScenario handles GET /api/v1/scenarios/:name
func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	s, err := scenario.Lookup(c.Param("name"))
	if err != nil {
		inputError(c, err)
		return
	}
	mode, err := report.ParseMode(c.DefaultQuery("mode", h.cfg.Report.Mode))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_MODE", err)
		return
	}
	engine, err := engineFor(h.cfg, c.Query("reference"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REFERENCE", err)
		return
	}

	in := scenario.Defaults()
	s.Apply(&in)
	frame := engine.Evaluate(in)

	c.JSON(http.StatusOK, models.ScenarioDetail{
		ScenarioInfo: models.ScenarioInfo{Name: s.Name(), Label: s.Label(), Inputs: in},
		Frame:        frame,
		Report:       report.Describe(frame, mode),
	})
}
