package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mismon/internal/config"
	"mismon/internal/signal"
)

type AdminHandler struct {
	Runtime  *config.Runtime
	Detector *signal.Detector
	Token    string
}

func (h *AdminHandler) Register(r *gin.Engine) {
	r.GET("/", h.status)
	r.PUT("/config", h.updateConfig)
}

func (h *AdminHandler) status(c *gin.Context) {
	snap := h.Runtime.Poller()
	data := gin.H{
		"status":        "ok",
		"poller_config": snapshotView(snap),
	}
	if h.Detector != nil {
		data["tracked_symbols"] = h.Detector.TrackedSymbols()
	}
	Ok(c, data, nil)
}

type configUpdateRequest struct {
	Enabled     *bool   `json:"enabled"`
	Symbols     *string `json:"symbols"`
	PollSeconds *int    `json:"poll_seconds"`
}

func (h *AdminHandler) updateConfig(c *gin.Context) {
	token := c.GetHeader("X-Admin-Token")
	if h.Token == "" || token != h.Token {
		Error(c, http.StatusUnauthorized, "invalid or missing admin token", nil)
		return
	}
	var req configUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "json body required", nil)
		return
	}
	patch := config.PollerPatch{
		Enabled: req.Enabled,
		Symbols: req.Symbols,
	}
	if req.PollSeconds != nil {
		if *req.PollSeconds <= 0 {
			Error(c, http.StatusBadRequest, "poll_seconds must be positive", nil)
			return
		}
		d := time.Duration(*req.PollSeconds) * time.Second
		patch.Interval = &d
	}
	next := h.Runtime.UpdatePoller(patch)
	Ok(c, gin.H{"new_config": snapshotView(next)}, nil)
}

func snapshotView(snap config.PollerSnapshot) gin.H {
	return gin.H{
		"enabled":      snap.Enabled,
		"symbols":      snap.Symbols,
		"poll_seconds": int(snap.Interval / time.Second),
	}
}
