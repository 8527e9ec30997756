package db

import (
	"context"
	"errors"
	"time"

	"github.com/suraj4812010/Videotube/models"
)

// ErrNotFound is returned by lookups that match no user, regardless of
// the backing store.
var ErrNotFound = errors.New("user not found")

// Database is the credential store. Every mutation is a single atomic
// update scoped to one user id; the store holds no cross-request state
// beyond the user documents themselves.
type Database interface {
	CreateUser(ctx context.Context, user CreateUser) (models.User, error)

	// GetUser loads a user with the password, refresh-token and reset
	// fields excluded. This is the lookup the request gate uses.
	GetUser(ctx context.Context, id models.UserID) (models.User, error)

	// FindByID loads the full document, credentials included.
	FindByID(ctx context.Context, id models.UserID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Exists(ctx context.Context, email, username string) (bool, error)

	// SetRefreshToken overwrites the stored refresh-token value; an empty
	// token clears it (logout / revocation).
	SetRefreshToken(ctx context.Context, id models.UserID, token string) error

	// SetPasswordReset overwrites the pending reset state; nil clears it.
	SetPasswordReset(ctx context.Context, id models.UserID, reset *models.PasswordReset) error

	// FindByResetToken matches a user whose pending reset token equals
	// token and whose expiry is after now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (models.User, error)

	// SetPassword stores a new password hash and clears both the pending
	// reset and the stored refresh token in the same write, so no state
	// exists where the password changed but a reset token or an old
	// session remained usable.
	SetPassword(ctx context.Context, id models.UserID, passwordHash string) error

	UpdateAccount(ctx context.Context, id models.UserID, update UpdateAccount) (models.User, error)
}

type CreateUser struct {
	FullName string
	Username string
	Email    string
	PwdHash  string
}

// UpdateAccount carries the mutable profile fields; empty fields are
// left untouched.
type UpdateAccount struct {
	FullName string
	Email    string
}
