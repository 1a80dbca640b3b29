package models

import (
	"supply-demand/internal/analysis"
	"supply-demand/internal/market"
	"supply-demand/internal/model"
)

// EvaluateResponse represents the response from evaluating one frame
type EvaluateResponse struct {
	ID                    string                               `json:"id"`
	Scenario              string                               `json:"scenario,omitempty"`
	Frame                 market.Frame                         `json:"frame"`
	ShowPolicyEquilibrium bool                                 `json:"show_policy_equilibrium"`
	Incidence             model.Optional[analysis.TaxIncidence] `json:"incidence"`
	Report                []string                             `json:"report"`
	Annotations           []string                             `json:"annotations"`
}

// SweepResponse represents the response from a parameter sweep
type SweepResponse struct {
	ID     string                `json:"id"`
	Param  string                `json:"param"`
	Points []analysis.SweepPoint `json:"points"`
}

// StreamFrame is one websocket message of the animated stream
type StreamFrame struct {
	StreamID string       `json:"stream_id"`
	Index    int          `json:"index"`
	Phase    float64      `json:"phase"`
	Frame    market.Frame `json:"frame"`
}

// ScenarioInfo describes a preset
type ScenarioInfo struct {
	Name   string             `json:"name"`
	Label  string             `json:"label"`
	Inputs model.MarketInputs `json:"inputs"`
}

// ScenarioDetail is a preset together with its evaluated frame
type ScenarioDetail struct {
	ScenarioInfo
	Frame  market.Frame `json:"frame"`
	Report []string     `json:"report"`
}

// ParameterInfo describes a sweepable parameter
type ParameterInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
	Default     float64 `json:"default"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
