package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/suraj4812010/Videotube/db"
	"github.com/suraj4812010/Videotube/forms"
	"github.com/suraj4812010/Videotube/models"
)

type UserService struct {
	db   db.Database
	auth *AuthService
}

func NewUserService(database db.Database, auth *AuthService) *UserService {
	return &UserService{db: database, auth: auth}
}

// Register creates a new account. Uniqueness is checked on both email
// and username.
func (s *UserService) Register(ctx context.Context, form forms.RegisterForm) (models.User, error) {
	exists, err := s.db.Exists(ctx, form.Email, form.Username)
	if err != nil {
		slog.Error("failed to check existing user", "error", err)
		return models.User{}, err
	}
	if exists {
		return models.User{}, models.BadRequest("User with this email or username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return models.User{}, err
	}

	user, err := s.db.CreateUser(ctx, db.CreateUser{
		FullName: form.FullName,
		Username: form.Username,
		Email:    form.Email,
		PwdHash:  string(hashedPassword),
	})
	if err != nil {
		slog.Error("failed to create user", "error", err)
		return models.User{}, err
	}

	// responses carry the sanitized record only
	user.Password = ""
	return user, nil
}

// Login verifies the password for an account addressed by email or
// username and issues a fresh session for it.
func (s *UserService) Login(ctx context.Context, form forms.LoginForm) (models.User, models.TokenPair, error) {
	user, err := s.findAccount(ctx, form)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		return models.User{}, models.TokenPair{}, models.Unauthorized("Invalid login details")
	}

	pair, err := s.auth.IssueSession(ctx, user.ID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	user.Password = ""
	user.RefreshToken = ""
	user.Reset = nil
	return user, pair, nil
}

func (s *UserService) findAccount(ctx context.Context, form forms.LoginForm) (models.User, error) {
	var (
		user models.User
		err  error
	)
	if form.Email != "" {
		user, err = s.db.FindByEmail(ctx, form.Email)
	} else {
		user, err = s.db.FindByUsername(ctx, form.Username)
	}

	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.User{}, models.Unauthorized("Invalid login details")
		}
		slog.Error("failed to look up account", "error", err)
		return models.User{}, err
	}

	return user, nil
}

// ChangePassword verifies the old password and stores the new hash.
// The store write revokes the stored refresh token as well, so
// outstanding sessions cannot be refreshed with the old credentials.
func (s *UserService) ChangePassword(ctx context.Context, userID models.UserID, oldPassword, newPassword string) error {
	user, err := s.db.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.NotFound("User not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.BadRequest("Invalid old password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err, "user_id", userID)
		return err
	}

	if err := s.db.SetPassword(ctx, userID, string(hashedPassword)); err != nil {
		slog.Error("failed to store new password", "error", err, "user_id", userID)
		return err
	}

	return nil
}

func (s *UserService) UpdateAccount(ctx context.Context, userID models.UserID, form forms.UpdateAccountForm) (models.User, error) {
	user, err := s.db.UpdateAccount(ctx, userID, db.UpdateAccount{
		FullName: form.FullName,
		Email:    form.Email,
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.User{}, models.NotFound("User not found")
		}
		slog.Error("failed to update account", "error", err, "user_id", userID)
		return models.User{}, err
	}

	return user, nil
}
