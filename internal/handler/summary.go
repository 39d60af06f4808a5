package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mismon/internal/service"
)

type SummaryHandler struct {
	Service *service.SummaryService
}

func (h *SummaryHandler) Register(r *gin.Engine) {
	r.GET("/summary", h.today)
	r.GET("/summary/historical", h.historical)
}

func (h *SummaryHandler) today(c *gin.Context) {
	symbol := cleanSymbol(c.Query("symbol"))
	if symbol == "" {
		Error(c, http.StatusBadRequest, "query parameter 'symbol' is required", nil)
		return
	}
	summary, err := h.Service.Today(c.Request.Context(), symbol)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, summary, nil)
}

func (h *SummaryHandler) historical(c *gin.Context) {
	symbol := cleanSymbol(c.Query("symbol"))
	date := strings.TrimSpace(c.Query("date"))
	if symbol == "" || date == "" {
		Error(c, http.StatusBadRequest, "query parameters 'symbol' and 'date' are required", nil)
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		Error(c, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD", nil)
		return
	}
	summary, err := h.Service.Historical(c.Request.Context(), symbol, date)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, summary, nil)
}

// cleanSymbol strips exchange suffixes like ".TW" so callers can pass either
// form.
func cleanSymbol(raw string) string {
	sym := strings.TrimSpace(raw)
	sym, _, _ = strings.Cut(sym, ".")
	return sym
}
