package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reciclaqui/backend/internal/container"
	handlers "github.com/reciclaqui/backend/internal/interface/http"
	"github.com/reciclaqui/backend/internal/interface/middleware"
	"github.com/reciclaqui/backend/pkg/helpers"
)

// CollectionModule wires the recycling collection routes. All routes
// require an authenticated session; declaring and reporting are
// restricted to eco-operators, responding to recyclers.

type CollectionModule struct {
	Handler *handlers.CollectionHandler
	JWT     *helpers.JWTManager
}

func NewCollectionModule(h *handlers.CollectionHandler, jwt *helpers.JWTManager) *CollectionModule {
	return &CollectionModule{Handler: h, JWT: jwt}
}

func (m *CollectionModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/collections", middleware.RequireRole("ECOOPERATOR"), m.Handler.Declare)
		auth.GET("/collections", middleware.RequireRole("ECOOPERATOR"), m.Handler.All)
		auth.GET("/collections/summary", middleware.RequireRole("ECOOPERATOR"), m.Handler.Summary)
		auth.GET("/collections/search", middleware.RequireRole("ECOOPERATOR"), m.Handler.Search)
		auth.POST("/collections/:id/respond", middleware.RequireRole("RECYCLER"), m.Handler.Respond)
		auth.GET("/collections/pending", middleware.RequireRole("RECYCLER"), m.Handler.Pending)
		auth.GET("/collections/mine", middleware.RequireRole("RECYCLER"), m.Handler.Mine)
	}
}
