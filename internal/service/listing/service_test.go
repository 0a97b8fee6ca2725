package listing_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Tnmoxa/epg-task/internal/app"
	"github.com/Tnmoxa/epg-task/internal/cache"
	"github.com/Tnmoxa/epg-task/internal/config"
	"github.com/Tnmoxa/epg-task/internal/db"
	svcErr "github.com/Tnmoxa/epg-task/internal/errors"
	"github.com/Tnmoxa/epg-task/internal/repository"
	"github.com/Tnmoxa/epg-task/internal/service/listing"
)

func ptr(v float64) *float64 { return &v }

// seedListingUsers inserts five users, one of whom (u1) is the querying
// origin. u4 has no coordinates; u5 is ~1568 km away from the origin.
func seedListingUsers(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	base := time.Now().UTC().Truncate(time.Millisecond)
	users := []db.User{
		{ID: 1, Gender: "male", FirstName: "first_name1", LastName: "last_name1",
			Email: "u1@test.com", PasswordHash: "x",
			Latitude: ptr(0.0), Longitude: ptr(0.0), CreatedAt: base.Add(-4 * time.Hour)},
		{ID: 2, Gender: "female", FirstName: "first_name2", LastName: "last_name2",
			Email: "u2@test.com", PasswordHash: "x",
			Latitude: ptr(0.01), Longitude: ptr(0.01), CreatedAt: base.Add(-3 * time.Hour)},
		{ID: 3, Gender: "female", FirstName: "first_name12", LastName: "last_name3",
			Email: "u3@test.com", PasswordHash: "x",
			Latitude: ptr(0.005), Longitude: ptr(0.005), CreatedAt: base.Add(-2 * time.Hour)},
		{ID: 4, Gender: "male", FirstName: "first_name4", LastName: "last_name4",
			Email: "u4@test.com", PasswordHash: "x", CreatedAt: base.Add(-time.Hour)},
		{ID: 5, Gender: "female", FirstName: "first_name5", LastName: "last_name5",
			Email: "u5@test.com", PasswordHash: "x",
			Latitude: ptr(10.0), Longitude: ptr(10.0), CreatedAt: base},
	}
	require.NoError(t, gdb.Create(&users).Error)
}

func setupService(t *testing.T) *listing.Service {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&db.User{}, &db.Rating{}))
	seedListingUsers(t, gdb)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	rdb := cache.NewRedisCache(cfg)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(cfg, gdb, rdb, nil, nil, log)
	return listing.NewService(appCtx)
}

func emails(users []db.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Email)
	}
	return out
}

func TestListUsersNoFilters(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	users, err := svc.ListUsers(ctx, listing.Filters{RequesterEmail: "u1@test.com"})
	require.NoError(t, err)
	assert.Len(t, users, 5)
}

func TestListUsersUnknownRequester(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, err := svc.ListUsers(ctx, listing.Filters{RequesterEmail: "missing@test.com"})
	assert.True(t, errors.Is(err, svcErr.ErrUserNotFound))
}

func TestListUsersFirstNameSubstring(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	users, err := svc.ListUsers(ctx, listing.Filters{
		RequesterEmail: "u1@test.com",
		FirstName:      "first_name1",
	})
	require.NoError(t, err)

	// substring match: first_name1 matches both u1 and u3 (first_name12)
	assert.ElementsMatch(t, []string{"u1@test.com", "u3@test.com"}, emails(users))
}

func TestListUsersConjunctiveFilters(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	users, err := svc.ListUsers(ctx, listing.Filters{
		RequesterEmail: "u1@test.com",
		Gender:         "female",
		FirstName:      "FIRST_NAME1",
	})
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "u3@test.com", users[0].Email)
}

func TestListUsersSortByRegistration(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	asc, err := svc.ListUsers(ctx, listing.Filters{
		RequesterEmail:     "u1@test.com",
		SortByRegistration: repository.SortAsc,
	})
	require.NoError(t, err)
	require.Len(t, asc, 5)
	assert.Equal(t, "u1@test.com", asc[0].Email)
	assert.Equal(t, "u5@test.com", asc[4].Email)

	desc, err := svc.ListUsers(ctx, listing.Filters{
		RequesterEmail:     "u1@test.com",
		SortByRegistration: repository.SortDesc,
	})
	require.NoError(t, err)
	require.Len(t, desc, 5)
	assert.Equal(t, "u5@test.com", desc[0].Email)
}

func TestListUsersDistanceFilter(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	users, err := svc.ListUsers(ctx, listing.Filters{
		RequesterEmail: "u1@test.com",
		RadiusKm:       ptr(2.0),
	})
	require.NoError(t, err)

	// u2 (~1.57 km) and u3 (~0.79 km) are inside the radius; the origin
	// itself, the coordinate-less u4, and the far-away u5 are excluded
	assert.ElementsMatch(t, []string{"u2@test.com", "u3@test.com"}, emails(users))
}

func TestListUsersDistanceFilterEmptyResult(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	users, err := svc.ListUsers(ctx, listing.Filters{
		RequesterEmail: "u1@test.com",
		RadiusKm:       ptr(0.1),
	})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestListUsersDistanceFilterOriginWithoutCoordinates(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, err := svc.ListUsers(ctx, listing.Filters{
		RequesterEmail: "u4@test.com",
		RadiusKm:       ptr(100.0),
	})
	assert.True(t, errors.Is(err, svcErr.ErrInvalidInput))
}
