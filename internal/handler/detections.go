package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mismon/internal/repository"
)

type DetectionHandler struct {
	Repo repository.Repository
}

func (h *DetectionHandler) Register(r *gin.Engine) {
	r.GET("/detections", h.list)
}

func (h *DetectionHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListDetections(c.Request.Context(), repository.ListDetectionsParams{
		Symbol: cleanSymbol(c.Query("symbol")),
		Limit:  intQuery(c, "limit", 100),
		Offset: intQuery(c, "offset", 0),
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
