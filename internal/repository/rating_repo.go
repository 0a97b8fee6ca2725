package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Tnmoxa/epg-task/internal/db"
)

// RatingRepository provides data access methods for the Rating model.
// It encapsulates all queries related to "like" edges between users.
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new repository bound to the given DB connection.
func NewRatingRepository(database *gorm.DB) *RatingRepository {
	return &RatingRepository{db: database}
}

// Create inserts the rating (rater -> rated) with the current timestamp.
//
// The composite primary key on (rater_id, rated_id) makes the insert the
// duplicate check: when the pair already exists the database rejects the row
// and the error surfaces as gorm.ErrDuplicatedKey. Two concurrent
// submissions for the same pair therefore cannot both succeed.
func (r *RatingRepository) Create(ctx context.Context, raterID, ratedID uint64) error {
	rating := db.Rating{
		RaterID: raterID,
		RatedID: ratedID,
	}
	return r.db.WithContext(ctx).Create(&rating).Error
}

// Exists reports whether the ordered pair (rater -> rated) is recorded.
// Used for the reverse-edge check that detects mutual matches.
func (r *RatingRepository) Exists(ctx context.Context, raterID, ratedID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Rating{}).
		Where("rater_id = ? AND rated_id = ?", raterID, ratedID).
		Count(&count).Error
	return count > 0, err
}

// CountForDay returns how many ratings the rater submitted within the
// calendar day containing `at`, using the server-local [00:00, 24:00) window.
func (r *RatingRepository) CountForDay(ctx context.Context, raterID uint64, at time.Time) (int64, error) {
	year, month, day := at.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, at.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Rating{}).
		Where("rater_id = ? AND created_at >= ? AND created_at < ?", raterID, start, end).
		Count(&count).Error
	return count, err
}
