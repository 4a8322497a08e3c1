package eventhandler

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/internal/domain/repository"
)

// PointsLedgerHandler writes one points-history row per accepted
// collection. It runs after the responding transaction has committed, so
// a failure here is logged by the publisher and never affects the
// request.
type PointsLedgerHandler struct {
	Points repository.PointsRepository
	Logger *logrus.Logger
}

func NewPointsLedgerHandler(points repository.PointsRepository, logger *logrus.Logger) *PointsLedgerHandler {
	return &PointsLedgerHandler{Points: points, Logger: logger}
}

func (h *PointsLedgerHandler) Handle(ctx context.Context, e event.Event) error {
	accepted, ok := e.(entity.CollectionAcceptedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T", e)
	}

	entry := entity.NewPointsEntryFromCollection(accepted.UserID, accepted.CollectionID, accepted.Points)
	if err := h.Points.Create(ctx, entry); err != nil {
		return fmt.Errorf("create points entry: %w", err)
	}

	h.Logger.WithFields(logrus.Fields{
		"user_id":       accepted.UserID,
		"collection_id": accepted.CollectionID,
		"points":        accepted.Points,
	}).Info("points transaction recorded")
	return nil
}

var _ event.Handler = (*PointsLedgerHandler)(nil)
