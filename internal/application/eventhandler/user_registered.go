package eventhandler

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/pkg/helpers"
	"github.com/reciclaqui/backend/pkg/mailer"
)

// WelcomeEmailHandler enqueues a welcome email job on RabbitMQ when an
// account is registered. The email worker picks it up and sends through
// Mailgun.
type WelcomeEmailHandler struct {
	Rabbit *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewWelcomeEmailHandler(rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{Rabbit: rabbit, Logger: logger}
}

func (h *WelcomeEmailHandler) Handle(ctx context.Context, e event.Event) error {
	registered, ok := e.(entity.UserRegisteredEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T", e)
	}
	h.Logger.WithFields(logrus.Fields{
		"user_id": registered.UserID,
		"role":    registered.Role,
	}).Info("user registered")

	if h.Rabbit == nil {
		return nil
	}
	job := mailer.EmailJob{
		To:       registered.Email,
		Template: "welcome",
		Data: map[string]any{
			"Role": registered.Role,
		},
	}
	if err := h.Rabbit.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue welcome email: %w", err)
	}
	return nil
}

var _ event.Handler = (*WelcomeEmailHandler)(nil)
