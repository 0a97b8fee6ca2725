package listing

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Tnmoxa/epg-task/internal/app"
	"github.com/Tnmoxa/epg-task/internal/db"
	svcErr "github.com/Tnmoxa/epg-task/internal/errors"
	"github.com/Tnmoxa/epg-task/internal/geo"
	"github.com/Tnmoxa/epg-task/internal/repository"
)

// Filters configures a listing request. RequesterEmail identifies the origin
// user; RadiusKm, when set, turns on the geo-distance filter around that
// user's coordinates.
type Filters struct {
	RequesterEmail     string
	Gender             string
	FirstName          string
	LastName           string
	SortByRegistration repository.SortOrder
	RadiusKm           *float64
}

// Service implements the filtered user listing.
type Service struct {
	appCtx   *app.AppContext
	users    *repository.UserRepository
	distance *geo.Calculator
}

// NewService creates a listing service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		users:    repository.NewUserRepository(appCtx.DB),
		distance: geo.NewCalculator(appCtx.RedisCache, appCtx.Logger),
	}
}

// ListUsers returns users matching the filters.
//
// Behavior:
//   - Attribute filters and sorting run in the database (repository.List).
//   - The distance filter runs last, per candidate: the origin's own row is
//     excluded by id, users without coordinates are excluded, and a
//     candidate is kept when its great-circle distance to the origin is
//     strictly below RadiusKm. Distances go through the advisory cache.
//   - An unknown requester email fails with ErrUserNotFound; an empty result
//     is an empty slice, not an error.
func (s *Service) ListUsers(ctx context.Context, f Filters) ([]db.User, error) {
	origin, err := s.users.GetByEmail(ctx, f.RequesterEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.ErrUserNotFound
		}
		return nil, err
	}

	users, err := s.users.List(ctx, repository.UserFilter{
		Gender:             f.Gender,
		FirstName:          f.FirstName,
		LastName:           f.LastName,
		SortByRegistration: f.SortByRegistration,
	})
	if err != nil {
		return nil, err
	}

	if f.RadiusKm == nil {
		return users, nil
	}

	if origin.Latitude == nil || origin.Longitude == nil {
		return nil, svcErr.Validation("current user has no coordinates")
	}

	within := make([]db.User, 0, len(users))
	for _, u := range users {
		if u.ID == origin.ID {
			continue
		}
		if u.Latitude == nil || u.Longitude == nil {
			continue
		}
		km := s.distance.Distance(ctx, *origin.Latitude, *origin.Longitude, *u.Latitude, *u.Longitude)
		if km < *f.RadiusKm {
			within = append(within, u)
		}
	}
	return within, nil
}
