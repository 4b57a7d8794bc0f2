package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/models"
)

// Error variables
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyUpdate  = errors.New("send username or email to update")
	ErrEmailInUse   = errors.New("email already in use")
)

// ProfileReader defines the read operations the profile service needs.
type ProfileReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	EmailTaken(ctx context.Context, email string, excludeUserID uuid.UUID) (bool, error)
}

// ProfileWriter defines the write operations the profile service needs.
type ProfileWriter interface {
	Update(ctx context.Context, userID uuid.UUID, username, email *string) (*models.UserDB, error)
}

// UserCache caches user records keyed by id.
type UserCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	Set(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserService handles profile reads and updates.
type UserService struct {
	reader ProfileReader
	writer ProfileWriter
	cache  UserCache
}

// UserOpt configures a UserService.
type UserOpt func(*UserService)

// WithUserCache attaches a profile cache.
func WithUserCache(cache UserCache) UserOpt {
	return func(svc *UserService) { svc.cache = cache }
}

// NewUserService creates a new UserService instance.
func NewUserService(reader ProfileReader, writer ProfileWriter, opts ...UserOpt) *UserService {
	svc := &UserService{
		reader: reader,
		writer: writer,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// GetProfile returns the user record for the given id, reading through
// the cache when one is configured.
func (svc *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	if svc.cache != nil {
		cached, err := svc.cache.Get(ctx, userID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, user); err != nil {
			logger.Log.Errorw("failed to cache user", "user_id", userID, "err", err)
		}
	}

	return user, nil
}

// UpdateProfile changes the username and/or email of a user. At least one
// field must be provided. An email owned by a different user fails with
// ErrEmailInUse; re-submitting the caller's current email is a no-op.
func (svc *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email *string) (*models.UserDB, error) {
	if username == nil && email == nil {
		return nil, ErrEmptyUpdate
	}

	if email != nil {
		// The probe excludes the caller's own row, so changing the email
		// back to its current value never conflicts.
		taken, err := svc.reader.EmailTaken(ctx, *email, userID)
		if err != nil {
			logger.Log.Errorw("failed to check email", "email", *email, "err", err)
			return nil, err
		}
		if taken {
			logger.Log.Infow("email already in use", "email", *email)
			return nil, ErrEmailInUse
		}
	}

	user, err := svc.writer.Update(ctx, userID, username, email)
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if svc.cache != nil {
		if err := svc.cache.Delete(ctx, userID); err != nil {
			logger.Log.Errorw("failed to invalidate user cache", "user_id", userID, "err", err)
		}
	}

	return user, nil
}
