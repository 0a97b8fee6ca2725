package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Tnmoxa/epg-task/internal/db"
	"github.com/Tnmoxa/epg-task/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(&db.User{}, &db.Rating{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func newUser(i int, gender string) *db.User {
	return &db.User{
		Gender:       gender,
		FirstName:    "first_name" + string(rune('0'+i)),
		LastName:     "last_name" + string(rune('0'+i)),
		Email:        "user" + string(rune('0'+i)) + "@test.com",
		PasswordHash: "x",
	}
}

func TestCreateUserAndDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(setupTestDB(t))

	u := newUser(1, "male")
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	dup := newUser(2, "female")
	dup.Email = u.Email
	err := repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestGetByEmailAndByID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(setupTestDB(t))

	u := newUser(1, "male")
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	_, err = repo.GetByEmail(ctx, "missing@test.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, &db.User{
		Gender: "male", FirstName: "Alexander", LastName: "Petrov",
		Email: "a@test.com", PasswordHash: "x",
	}))
	require.NoError(t, repo.Create(ctx, &db.User{
		Gender: "female", FirstName: "Alexandra", LastName: "Smirnova",
		Email: "b@test.com", PasswordHash: "x",
	}))
	require.NoError(t, repo.Create(ctx, &db.User{
		Gender: "female", FirstName: "Maria", LastName: "Petrova",
		Email: "c@test.com", PasswordHash: "x",
	}))

	// gender exact match
	females, err := repo.List(ctx, repository.UserFilter{Gender: "female"})
	require.NoError(t, err)
	assert.Len(t, females, 2)

	// case-insensitive substring on first name
	alexes, err := repo.List(ctx, repository.UserFilter{FirstName: "alexand"})
	require.NoError(t, err)
	assert.Len(t, alexes, 2)

	// filters compose conjunctively
	both, err := repo.List(ctx, repository.UserFilter{Gender: "female", FirstName: "alexand"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "b@test.com", both[0].Email)

	// substring on last name
	petrovs, err := repo.List(ctx, repository.UserFilter{LastName: "petrov"})
	require.NoError(t, err)
	assert.Len(t, petrovs, 2)

	// no match is an empty slice, not an error
	none, err := repo.List(ctx, repository.UserFilter{FirstName: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListSortByRegistration(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	repo := repository.NewUserRepository(database)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		u := db.User{
			Gender: "male", FirstName: "u", LastName: "u",
			Email:        string(rune('a'+i)) + "@test.com",
			PasswordHash: "x",
			CreatedAt:    base.Add(-offset),
		}
		require.NoError(t, database.Create(&u).Error)
	}

	asc, err := repo.List(ctx, repository.UserFilter{SortByRegistration: repository.SortAsc})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.True(t, asc[0].CreatedAt.Before(asc[1].CreatedAt))
	assert.True(t, asc[1].CreatedAt.Before(asc[2].CreatedAt))

	desc, err := repo.List(ctx, repository.UserFilter{SortByRegistration: repository.SortDesc})
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.True(t, desc[0].CreatedAt.After(desc[1].CreatedAt))
}
