package eventhandler

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
)

// BalanceCacheHandler keeps the session's cached balance in step with
// the committed balance. Registered for both PointsAdded and
// PointsRedeemed.
type BalanceCacheHandler struct {
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewBalanceCacheHandler(rdb *redis.Client, logger *logrus.Logger) *BalanceCacheHandler {
	return &BalanceCacheHandler{Redis: rdb, Logger: logger}
}

func (h *BalanceCacheHandler) Handle(ctx context.Context, e event.Event) error {
	if h.Redis == nil {
		return nil
	}

	var userID string
	var balance int
	switch ev := e.(type) {
	case entity.PointsAddedEvent:
		userID, balance = ev.UserID, ev.TotalBalance
	case entity.PointsRedeemedEvent:
		userID, balance = ev.UserID, ev.RemainingBalance
	default:
		return fmt.Errorf("unexpected event %T", e)
	}

	key := "user:session:" + userID
	if err := h.Redis.HSet(ctx, key, "points_balance", balance).Err(); err != nil {
		return fmt.Errorf("cache balance: %w", err)
	}
	h.Logger.WithFields(logrus.Fields{"user_id": userID, "balance": balance}).Debug("balance cache refreshed")
	return nil
}

var _ event.Handler = (*BalanceCacheHandler)(nil)
