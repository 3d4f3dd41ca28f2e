package api

import (
	"net/http"

	"go.uber.org/zap"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// Health проверяет соединение с базой.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Failure      503 {object} models.ErrorResponse "Database unavailable"
// @Router       /healthz [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Ping(r.Context()); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		WriteError(w, http.StatusServiceUnavailable, serr.CodeInternal, serr.MsgUnavailable)
		return
	}
	WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
