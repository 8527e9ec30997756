package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/suraj4812010/Videotube/db"
	"github.com/suraj4812010/Videotube/mailer"
	"github.com/suraj4812010/Videotube/models"
)

// RecoveryService runs the password-recovery flow: a user moves from no
// pending reset to exactly one pending reset, which is then consumed
// once or expires.
type RecoveryService struct {
	db      db.Database
	mail    mailer.Sender
	ttl     time.Duration
	baseURL string
}

func NewRecoveryService(database db.Database, mail mailer.Sender, ttl time.Duration, baseURL string) *RecoveryService {
	return &RecoveryService{db: database, mail: mail, ttl: ttl, baseURL: baseURL}
}

// RequestReset generates a random single-use token for the account with
// the given email, persists it with an absolute expiry, and mails the
// recovery link. An unknown email returns nil as well: the response must
// not reveal whether an account exists. A delivery failure fails the
// whole operation rather than leaving a silently undeliverable pending
// reset.
func (s *RecoveryService) RequestReset(ctx context.Context, email string) error {
	user, err := s.db.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil
		}
		slog.Error("failed to look up account for reset", "error", err)
		return err
	}

	token, err := newResetToken()
	if err != nil {
		slog.Error("failed to generate reset token", "error", err, "user_id", user.ID)
		return err
	}

	reset := &models.PasswordReset{
		Token:     token,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.SetPasswordReset(ctx, user.ID, reset); err != nil {
		slog.Error("failed to persist reset token", "error", err, "user_id", user.ID)
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your account.
		Click the link below to choose a new password:</p>
		<p><a href="%s">%s</a></p>
		<p>The link expires in %s. If you did not request this, you can
		safely ignore this email.</p>
	`, user.FullName, link, link, s.ttl)

	if err := s.mail.Send(user.Email, "Reset your password", body); err != nil {
		slog.Error("failed to send reset mail", "error", err, "user_id", user.ID)
		return err
	}

	return nil
}

// ConsumeReset authorizes exactly one password change for the account
// whose pending reset token equals token and has not expired. The new
// hash is stored while the pending reset and the stored refresh token
// are cleared in the same store write, so there is no state where the
// password changed but the token stayed consumable or an old session
// could still refresh.
func (s *RecoveryService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	user, err := s.db.FindByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.BadRequest("Reset token is invalid or expired")
		}
		slog.Error("failed to look up reset token", "error", err)
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err, "user_id", user.ID)
		return err
	}

	if err := s.db.SetPassword(ctx, user.ID, string(hashedPassword)); err != nil {
		slog.Error("failed to store new password", "error", err, "user_id", user.ID)
		return err
	}

	return nil
}

// newResetToken returns a random opaque value; it is not a signed
// structure and carries no account data.
func newResetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
