package handlers

import (
	"errors"
	"net/http"

	"supply-demand/internal/api/models"
	"supply-demand/internal/config"
	"supply-demand/internal/market"
	"supply-demand/internal/model"
	"supply-demand/internal/scenario"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// resolveInputs picks explicit inputs over a named scenario. An empty
// scenario name means the configured market.
func resolveInputs(cfg *config.Config, name string, inputs *model.MarketInputs) (model.MarketInputs, string, error) {
	if inputs != nil {
		return *inputs, "", nil
	}
	if name == "" {
		return cfg.ToModelInputs(), "", nil
	}
	in, err := scenario.Inputs(name)
	if err != nil {
		return model.MarketInputs{}, "", err
	}
	s, _ := scenario.Lookup(name)
	return in, s.Name(), nil
}

// engineFor honours a per-request reference, falling back to the config.
func engineFor(cfg *config.Config, reference string) (*market.Engine, error) {
	if reference == "" {
		return cfg.Engine()
	}
	ref, err := market.ParseReference(reference)
	if err != nil {
		return nil, err
	}
	return market.WithReference(ref), nil
}

// inputError maps resolveInputs/engineFor failures onto API codes.
func inputError(c *gin.Context, err error) {
	if errors.Is(err, scenario.ErrUnknownScenario) {
		respondError(c, http.StatusNotFound, "UNKNOWN_SCENARIO", err)
		return
	}
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
}
