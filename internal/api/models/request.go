package models

import "supply-demand/internal/model"

// EvaluateRequest represents the request body for evaluating one frame.
// When Inputs is omitted the named Scenario is used, and without a Scenario
// the configured market.
type EvaluateRequest struct {
	Scenario  string              `json:"scenario,omitempty"`
	Inputs    *model.MarketInputs `json:"inputs,omitempty"`
	Mode      string              `json:"mode,omitempty"`      // "simple" or "pro"
	Reference string              `json:"reference,omitempty"` // "base" or "policy"
}

// SweepRequest varies one parameter over [From, To].
type SweepRequest struct {
	Scenario  string              `json:"scenario,omitempty"`
	Inputs    *model.MarketInputs `json:"inputs,omitempty"`
	Reference string              `json:"reference,omitempty"`
	Param     string              `json:"param" binding:"required"`
	From      float64             `json:"from"`
	To        float64             `json:"to"`
	Step      float64             `json:"step" binding:"required"`
}

// StreamRequest is the query string of the websocket frame stream.
type StreamRequest struct {
	Scenario  string  `form:"scenario,omitempty"`
	Reference string  `form:"reference,omitempty"`
	FPS       int     `form:"fps,omitempty"`    // default: 30
	Frames    int     `form:"frames,omitempty"` // default: config animation.frames
	Step      float64 `form:"step,omitempty"`   // default: config animation.step
}
