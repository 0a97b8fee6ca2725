package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Tnmoxa/epg-task/internal/db"
)

// SortOrder for registration-date sorting in listings.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// UserFilter holds the optional attribute filters for listings. Filters
// compose conjunctively; empty fields are ignored.
type UserFilter struct {
	Gender             string
	FirstName          string
	LastName           string
	SortByRegistration SortOrder
}

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a new user. A duplicate email surfaces as
// gorm.ErrDuplicatedKey via the unique index on users.email.
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID returns the user with the given id, or gorm.ErrRecordNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns the user with the given email, or gorm.ErrRecordNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns users matching the filter.
//
// Behavior:
//   - Gender is an exact match; first/last name are case-insensitive
//     substring matches.
//   - SortByRegistration orders on created_at; SortNone keeps storage order.
//   - No matches is an empty slice, not an error.
func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]db.User, error) {
	query := r.db.WithContext(ctx).Model(&db.User{})

	if f.Gender != "" {
		query = query.Where("gender = ?", f.Gender)
	}
	if f.FirstName != "" {
		query = query.Where("LOWER(first_name) LIKE ?", "%"+strings.ToLower(f.FirstName)+"%")
	}
	if f.LastName != "" {
		query = query.Where("LOWER(last_name) LIKE ?", "%"+strings.ToLower(f.LastName)+"%")
	}

	switch f.SortByRegistration {
	case SortAsc:
		query = query.Order("created_at ASC")
	case SortDesc:
		query = query.Order("created_at DESC")
	}

	users := make([]db.User, 0)
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
