package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/suraj4812010/Videotube/db"
	"github.com/suraj4812010/Videotube/models"
)

// AuthService owns the session-token lifecycle: issuance, verification,
// rotation and revocation of access/refresh pairs.
type AuthService struct {
	codec Codec
	db    db.Database
}

func NewAuthService(codec Codec, database db.Database) *AuthService {
	return &AuthService{codec: codec, db: database}
}

// IssueSession mints a fresh access/refresh pair for userID and persists
// the refresh token onto the user record, silently invalidating any
// previously issued refresh token for that user. A persistence failure
// after minting is fatal for the request: the caller never receives an
// unsynchronized pair.
func (s *AuthService) IssueSession(ctx context.Context, userID models.UserID) (models.TokenPair, error) {
	if _, err := s.db.FindByID(ctx, userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.TokenPair{}, models.NotFound("User not found")
		}
		return models.TokenPair{}, err
	}

	access, err := s.codec.Issue(AccessToken, userID)
	if err != nil {
		slog.Error("failed to sign access token", "error", err, "user_id", userID)
		return models.TokenPair{}, err
	}

	refresh, err := s.codec.Issue(RefreshToken, userID)
	if err != nil {
		slog.Error("failed to sign refresh token", "error", err, "user_id", userID)
		return models.TokenPair{}, err
	}

	if err := s.db.SetRefreshToken(ctx, userID, refresh); err != nil {
		slog.Error("failed to persist refresh token", "error", err, "user_id", userID)
		return models.TokenPair{}, err
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Authenticate is the request-time gate. It verifies the access token and
// resolves the user it embeds, with credential fields excluded from the
// result. The store lookup is deliberate: deleted accounts are rejected
// even while their access tokens are still cryptographically valid.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	if tokenString == "" {
		return models.User{}, models.Unauthorized("Unauthorized request")
	}

	userID, err := s.codec.Verify(tokenString, AccessToken)
	if err != nil {
		return models.User{}, models.Unauthorized("Invalid access token: " + err.Error())
	}

	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.User{}, models.Unauthorized("Invalid access token")
		}
		slog.Error("failed to load user for access token", "error", err, "user_id", userID)
		return models.User{}, err
	}

	return user, nil
}

// Rotate exchanges a still-current refresh token for a new pair. The
// incoming value must both verify cryptographically and match the value
// stored on the user record; the stored value is the sole source of
// truth, so a token that was already rotated or revoked fails here no
// matter how long it remains unexpired.
func (s *AuthService) Rotate(ctx context.Context, tokenString string) (models.TokenPair, error) {
	if tokenString == "" {
		return models.TokenPair{}, models.Unauthorized("Unauthorized request")
	}

	userID, err := s.codec.Verify(tokenString, RefreshToken)
	if err != nil {
		return models.TokenPair{}, models.Unauthorized("Invalid refresh token")
	}

	current, err := s.isCurrent(ctx, userID, tokenString)
	if err != nil {
		return models.TokenPair{}, err
	}
	if !current {
		return models.TokenPair{}, models.Unauthorized("Refresh token is expired or used")
	}

	pair, err := s.IssueSession(ctx, userID)
	if err != nil {
		slog.Error("failed to rotate session", "error", err, "user_id", userID)
		return models.TokenPair{}, err
	}

	return pair, nil
}

// isCurrent reports whether tokenString is exactly the refresh token most
// recently issued to userID.
func (s *AuthService) isCurrent(ctx context.Context, userID models.UserID, tokenString string) (bool, error) {
	user, err := s.db.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return false, models.Unauthorized("Invalid refresh token")
		}
		slog.Error("failed to load user for refresh token", "error", err, "user_id", userID)
		return false, err
	}

	if user.RefreshToken == "" {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(tokenString)) == 1, nil
}

// ClearSession drops the stored refresh token for userID, immediately
// invalidating every outstanding refresh token regardless of expiry.
func (s *AuthService) ClearSession(ctx context.Context, userID models.UserID) error {
	if err := s.db.SetRefreshToken(ctx, userID, ""); err != nil {
		slog.Error("failed to clear refresh token", "error", err, "user_id", userID)
		return err
	}
	return nil
}
