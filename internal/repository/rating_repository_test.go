package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tnmoxa/epg-task/internal/db"
	"github.com/Tnmoxa/epg-task/internal/repository"
)

func TestCreateRatingAndDuplicatePair(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRatingRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, 1, 2))

	// same ordered pair is rejected by the composite PK
	err := repo.Create(ctx, 1, 2)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// the reverse pair is a distinct edge
	assert.NoError(t, repo.Create(ctx, 2, 1))
}

func TestRatingExists(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRatingRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, 1, 2))

	exists, err := repo.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	// directionality matters
	reverse, err := repo.Exists(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestCountForDay(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	repo := repository.NewRatingRepository(database)

	now := time.Now()

	// two ratings today
	require.NoError(t, repo.Create(ctx, 1, 2))
	require.NoError(t, repo.Create(ctx, 1, 3))

	// one rating yesterday, outside the window
	yesterday := db.Rating{RaterID: 1, RatedID: 4, CreatedAt: now.AddDate(0, 0, -1)}
	require.NoError(t, database.Create(&yesterday).Error)

	// a different rater today
	require.NoError(t, repo.Create(ctx, 9, 2))

	count, err := repo.CountForDay(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// yesterday's window sees only the backdated row
	prev, err := repo.CountForDay(ctx, 1, now.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), prev)
}
