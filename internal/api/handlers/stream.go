package handlers

import (
	"net/http"
	"time"

	"supply-demand/internal/api/models"
	"supply-demand/internal/config"
	"supply-demand/internal/logger"
	"supply-demand/internal/market"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	defaultFPS = 30
	maxFPS     = 60
	// maxStreamFrames caps a single stream at ten minutes of 60 fps.
	maxStreamFrames = 36000
)

// StreamHandler pushes animated frames over a websocket
type StreamHandler struct {
	cfg      *config.Config
	log      *logger.Log
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(cfg *config.Config, log *logger.Log) *StreamHandler {
	return &StreamHandler{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Stream handles GET /api/v1/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	var req models.StreamRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	in, name, err := resolveInputs(h.cfg, req.Scenario, nil)
	if err != nil {
		inputError(c, err)
		return
	}
	engine, err := engineFor(h.cfg, req.Reference)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REFERENCE", err)
		return
	}

	fps := req.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	if fps > maxFPS {
		fps = maxFPS
	}
	frames := req.Frames
	if frames <= 0 {
		frames = h.cfg.Animation.Frames
	}
	if frames > maxStreamFrames {
		frames = maxStreamFrames
	}
	step := req.Step
	if step == 0 {
		step = h.cfg.Animation.Step
	}
	clock := market.NewClock(step)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	entry := h.log.WithComponent("stream").WithFields(logger.Fields{
		"stream_id": id,
		"scenario":  name,
		"fps":       fps,
		"frames":    frames,
	})
	entry.Info("stream started")

	// The client never sends data; a read error means it went away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	sent := 0
	for sent < frames {
		select {
		case <-done:
			entry.WithFields(logger.Fields{"sent": sent}).Info("client disconnected")
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			snap := in
			snap.Animate = true
			snap.Phase = clock.PhaseAt(sent)
			msg := models.StreamFrame{
				StreamID: id,
				Index:    sent,
				Phase:    snap.Phase,
				Frame:    engine.Evaluate(snap),
			}
			if err := conn.WriteJSON(msg); err != nil {
				entry.WithError(err).Warn("stream write failed")
				return
			}
			sent++
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
	entry.WithFields(logger.Fields{"sent": sent}).Info("stream finished")
}
