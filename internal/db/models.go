package db

import (
	"time"
)

// User table. Email is unique at the storage level; registration surfaces the
// constraint violation as an "email already registered" error.
// Latitude/Longitude are optional: users without coordinates are excluded from
// distance-filtered listings.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Gender       string    `gorm:"size:16;not null" json:"gender"`
	FirstName    string    `gorm:"size:64;not null" json:"first_name"`
	LastName     string    `gorm:"size:64;not null" json:"last_name"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"registered_at"`
}

// Rating is a directed "like" edge from rater to rated.
//
// Composite PK: (RaterID, RatedID)
//   - At most one edge per ordered pair; a second insert for the same pair is
//     rejected by the database and surfaces as gorm.ErrDuplicatedKey. The
//     constraint, not an application-level existence check, arbitrates
//     concurrent duplicate submissions.
//
// Index:
//   - idx_rater_created(rater_id, created_at) supports the per-day quota count.
//
// Rows are never updated or deleted in normal operation.
type Rating struct {
	RaterID   uint64    `gorm:"primaryKey;index:idx_rater_created,priority:1"`
	RatedID   uint64    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_rater_created,priority:2"`
}
