package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Tnmoxa/epg-task/internal/app"
	"github.com/Tnmoxa/epg-task/internal/auth"
	"github.com/Tnmoxa/epg-task/internal/db"
	svcErr "github.com/Tnmoxa/epg-task/internal/errors"
	"github.com/Tnmoxa/epg-task/internal/repository"
)

// Outcome of a successful rating submission.
type Outcome int

const (
	// OutcomeRecorded means the rating was stored with no reverse edge.
	OutcomeRecorded Outcome = iota
	// OutcomeMutualMatch means the reverse edge already existed; both
	// parties were notified.
	OutcomeMutualMatch
)

// Service implements account creation, the token placeholder, and the rating
// ledger. It contains the business logic on top of repository, notification
// and storage layers.
type Service struct {
	appCtx  *app.AppContext
	users   *repository.UserRepository
	ratings *repository.RatingRepository
	tokens  *auth.TokenIssuer
}

// NewService creates a clients service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:  appCtx,
		users:   repository.NewUserRepository(appCtx.DB),
		ratings: repository.NewRatingRepository(appCtx.DB),
		tokens:  auth.NewTokenIssuer(appCtx.Cfg),
	}
}

// RegisterParams carries the profile fields of a registration request.
// AvatarRef is the stored avatar reference produced by the upload collaborator.
type RegisterParams struct {
	Gender    string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Latitude  *float64
	Longitude *float64
	AvatarRef string
}

// Register creates a new user with a hashed credential.
//
// Behavior:
//   - The password is bcrypt-hashed; the plaintext is never stored.
//   - A duplicate email is detected by the unique index and mapped to
//     ErrEmailTaken.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*db.User, error) {
	if p.Gender == "" || p.FirstName == "" || p.LastName == "" || p.Email == "" || p.Password == "" {
		return nil, svcErr.Validation("gender, first_name, last_name, email and password are required")
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Gender:       p.Gender,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		PasswordHash: hash,
		Avatar:       p.AvatarRef,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, svcErr.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.appCtx.Logger.Info("user registered", "id", user.ID, "email", user.Email)
	return user, nil
}

// IssueToken verifies the credential and returns a signed token.
// Scaffolding only: no endpoint requires the token yet.
func (s *Service) IssueToken(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", svcErr.Validation("invalid email or password")
		}
		return "", err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", svcErr.Validation("invalid email or password")
	}
	return s.tokens.Issue(user.ID, user.Email)
}

// SubmitRating records that the user identified by raterEmail liked the user
// with id ratedID, enforcing the daily quota, and reports whether the like
// completed a mutual match.
//
// Flow: resolve both users -> reject self-rating -> check today's quota ->
// insert (the composite PK detects duplicates) -> check the reverse edge.
// On a mutual match both parties are notified; delivery is best-effort and
// never affects the result.
func (s *Service) SubmitRating(ctx context.Context, raterEmail string, ratedID uint64, dayQuota int) (Outcome, error) {
	rater, err := s.users.GetByEmail(ctx, raterEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, svcErr.ErrUserNotFound
		}
		return 0, err
	}

	rated, err := s.users.GetByID(ctx, ratedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, svcErr.ErrUserNotFound
		}
		return 0, err
	}

	if rater.ID == rated.ID {
		return 0, svcErr.ErrSelfRating
	}

	// Read-then-insert: a concurrent overlapping request may overshoot the
	// quota by one. Accepted relaxation, the duplicate constraint below is
	// the hard guarantee.
	count, err := s.ratings.CountForDay(ctx, rater.ID, time.Now())
	if err != nil {
		return 0, err
	}
	if count >= int64(dayQuota) {
		return 0, svcErr.ErrQuotaExceeded
	}

	if err := s.ratings.Create(ctx, rater.ID, rated.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, svcErr.ErrDuplicateRating
		}
		return 0, err
	}

	mutual, err := s.ratings.Exists(ctx, rated.ID, rater.ID)
	if err != nil {
		// the rating is committed; a failed reverse check downgrades the
		// result rather than failing the request
		s.appCtx.Logger.Error("reverse rating check failed", "rater", rater.ID, "rated", rated.ID, "err", err)
		return OutcomeRecorded, nil
	}

	if mutual {
		s.appCtx.Logger.Info("mutual match", "a", rater.ID, "b", rated.ID)
		s.appCtx.Notifier.NotifyMatch(ctx, *rater, *rated)
		return OutcomeMutualMatch, nil
	}

	return OutcomeRecorded, nil
}
