package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/application"
	"github.com/reciclaqui/backend/pkg/response"
)

type PointsHandler struct {
	Svc    *application.PointsService
	Logger *logrus.Logger
}

func NewPointsHandler(svc *application.PointsService, logger *logrus.Logger) *PointsHandler {
	return &PointsHandler{Svc: svc, Logger: logger}
}

func (h *PointsHandler) History(c *gin.Context) {
	entries, err := h.Svc.History(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusFor(err), "failed to load points history", nil)
		return
	}
	response.Success(c, http.StatusOK, entries, "points history", map[string]any{"count": len(entries)})
}

func (h *PointsHandler) Total(c *gin.Context) {
	total, err := h.Svc.Total(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusFor(err), "failed to total points", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"total_points": total}, "points total", nil)
}
