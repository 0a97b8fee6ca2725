package clients

import (
	"github.com/gin-gonic/gin"

	"github.com/Tnmoxa/epg-task/internal/app"
)

// Registrar ties the clients service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the clients service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the clients routes to the engine
func (r *Registrar) Register(e *gin.Engine) {
	service := NewService(r.appCtx)

	g := e.Group("/clients")
	g.POST("/create", service.handleCreate)
	g.POST("/:id/match", service.handleMatch)
	g.POST("/token", service.handleToken)
}
