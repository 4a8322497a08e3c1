package eventhandler

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
)

// RejectionLogHandler records collection rejections for the operator
// audit trail.
type RejectionLogHandler struct {
	Logger *logrus.Logger
}

func NewRejectionLogHandler(logger *logrus.Logger) *RejectionLogHandler {
	return &RejectionLogHandler{Logger: logger}
}

func (h *RejectionLogHandler) Handle(ctx context.Context, e event.Event) error {
	rejected, ok := e.(entity.CollectionRejectedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T", e)
	}
	fields := logrus.Fields{
		"collection_id": rejected.CollectionID,
		"user_id":       rejected.UserID,
	}
	if rejected.Reason != "" {
		fields["reason"] = rejected.Reason
	}
	h.Logger.WithFields(fields).Info("collection rejected")
	return nil
}

var _ event.Handler = (*RejectionLogHandler)(nil)
