package listing

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tnmoxa/epg-task/internal/app"
	svcErr "github.com/Tnmoxa/epg-task/internal/errors"
	"github.com/Tnmoxa/epg-task/internal/repository"
)

// Registrar ties the listing service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the listing service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the listing route to the engine
func (r *Registrar) Register(e *gin.Engine) {
	service := NewService(r.appCtx)
	e.GET("/list", service.handleList)
}

// handleList serves GET /list with optional query filters.
func (s *Service) handleList(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		svcErr.JSON(c, svcErr.Validation("email query parameter is required"))
		return
	}

	f := Filters{
		RequesterEmail: email,
		Gender:         c.Query("gender"),
		FirstName:      c.Query("first_name"),
		LastName:       c.Query("last_name"),
	}

	switch c.Query("sort_by_registration_date") {
	case "asc":
		f.SortByRegistration = repository.SortAsc
	case "desc":
		f.SortByRegistration = repository.SortDesc
	}

	if raw := c.Query("distance"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			svcErr.JSON(c, svcErr.Validation("distance must be a number of kilometers"))
			return
		}
		f.RadiusKm = &radius
	}

	users, err := s.ListUsers(c.Request.Context(), f)
	if err != nil {
		svcErr.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
