package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reciclaqui/backend/internal/container"
	handlers "github.com/reciclaqui/backend/internal/interface/http"
	"github.com/reciclaqui/backend/internal/interface/middleware"
	"github.com/reciclaqui/backend/pkg/helpers"
)

// PointsModule exposes the points ledger for the authenticated user.

type PointsModule struct {
	Handler *handlers.PointsHandler
	JWT     *helpers.JWTManager
}

func NewPointsModule(h *handlers.PointsHandler, jwt *helpers.JWTManager) *PointsModule {
	return &PointsModule{Handler: h, JWT: jwt}
}

func (m *PointsModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/points/history", m.Handler.History)
		auth.GET("/points/total", m.Handler.Total)
	}
}
