package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/application"
	"github.com/reciclaqui/backend/pkg/response"
	"github.com/reciclaqui/backend/pkg/validation"
)

type CollectionHandler struct {
	Svc    *application.CollectionService
	Logger *logrus.Logger
}

func NewCollectionHandler(svc *application.CollectionService, logger *logrus.Logger) *CollectionHandler {
	return &CollectionHandler{Svc: svc, Logger: logger}
}

type declareRequest struct {
	UserID       string `json:"user_id" binding:"required,uuid"`
	MaterialType string `json:"material_type" binding:"required,material"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	Description  string `json:"description"`
}

type respondRequest struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason"`
}

// Declare creates a pending collection. The operator is the
// authenticated user.
func (h *CollectionHandler) Declare(c *gin.Context) {
	var req declareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.DeclareRecycling(c.Request.Context(), application.DeclareRecyclingInput{
		OperatorID:   c.GetString("userID"),
		UserID:       req.UserID,
		MaterialType: req.MaterialType,
		Quantity:     req.Quantity,
		Description:  req.Description,
	})
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusCreated, res, res.Message, nil)
}

// Respond accepts or rejects a pending collection. The responder is the
// authenticated user; ownership is enforced by the domain.
func (h *CollectionHandler) Respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.RespondToCollection(c.Request.Context(), application.RespondToCollectionInput{
		CollectionID: c.Param("id"),
		UserID:       c.GetString("userID"),
		Accept:       req.Accept,
		Reason:       req.Reason,
	})
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, res.Message, nil)
}

func (h *CollectionHandler) Pending(c *gin.Context) {
	views, err := h.Svc.PendingForUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusFor(err), "failed to list pending collections", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "pending collections", map[string]any{"count": len(views)})
}

func (h *CollectionHandler) Mine(c *gin.Context) {
	views, err := h.Svc.ForUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusFor(err), "failed to list collections", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "collections", map[string]any{"count": len(views)})
}

func (h *CollectionHandler) All(c *gin.Context) {
	views, err := h.Svc.All(c.Request.Context())
	if err != nil {
		response.Error[any](c, statusFor(err), "failed to list collections", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "collections", map[string]any{"count": len(views)})
}

// Search queries the accepted-collections index by collection or
// recycler id.
func (h *CollectionHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	results, err := h.Svc.SearchAccepted(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, results, "search results", map[string]any{"count": len(results)})
}

// Summary returns accepted totals grouped by material.
func (h *CollectionHandler) Summary(c *gin.Context) {
	rows, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		response.Error[any](c, statusFor(err), "failed to build summary", nil)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, map[string]any{
			"material_type": r.Material,
			"collections":   r.Collections,
			"total_units":   r.TotalUnits,
			"total_points":  r.TotalPoints,
		})
	}
	response.Success(c, http.StatusOK, out, "collection summary", nil)
}
