package db

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/suraj4812010/Videotube/models"
)

var _ Database = (*Memory)(nil)

// Memory is an in-process Database used by tests. It mirrors the Mongo
// implementation's semantics, including the atomic password+reset write.
type Memory struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]models.User)}
}

func (m *Memory) CreateUser(_ context.Context, user CreateUser) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().Unix()
	dbuser := models.User{
		ID:        models.NewUserID(),
		CreatedAt: now,
		UpdatedAt: now,
		FullName:  user.FullName,
		Username:  strings.ToLower(strings.TrimSpace(user.Username)),
		Email:     strings.ToLower(strings.TrimSpace(user.Email)),
		Password:  user.PwdHash,
	}
	m.users[dbuser.ID.String()] = dbuser

	return dbuser, nil
}

func (m *Memory) GetUser(ctx context.Context, id models.UserID) (models.User, error) {
	user, err := m.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	user.Password = ""
	user.RefreshToken = ""
	user.Reset = nil
	return user, nil
}

func (m *Memory) FindByID(_ context.Context, id models.UserID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id.String()]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return m.findBy(func(u models.User) bool { return u.Email == email })
}

func (m *Memory) FindByUsername(_ context.Context, username string) (models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	return m.findBy(func(u models.User) bool { return u.Username == username })
}

func (m *Memory) Exists(ctx context.Context, email, username string) (bool, error) {
	if _, err := m.FindByEmail(ctx, email); err == nil {
		return true, nil
	}
	if _, err := m.FindByUsername(ctx, username); err == nil {
		return true, nil
	}
	return false, nil
}

func (m *Memory) SetRefreshToken(_ context.Context, id models.UserID, token string) error {
	return m.update(id, func(u *models.User) {
		u.RefreshToken = token
	})
}

func (m *Memory) SetPasswordReset(_ context.Context, id models.UserID, reset *models.PasswordReset) error {
	return m.update(id, func(u *models.User) {
		u.Reset = reset
	})
}

func (m *Memory) FindByResetToken(_ context.Context, token string, now time.Time) (models.User, error) {
	return m.findBy(func(u models.User) bool {
		return u.Reset != nil && u.Reset.Token == token && u.Reset.Active(now)
	})
}

func (m *Memory) SetPassword(_ context.Context, id models.UserID, passwordHash string) error {
	return m.update(id, func(u *models.User) {
		u.Password = passwordHash
		u.Reset = nil
		u.RefreshToken = ""
	})
}

func (m *Memory) UpdateAccount(ctx context.Context, id models.UserID, acc UpdateAccount) (models.User, error) {
	err := m.update(id, func(u *models.User) {
		if acc.FullName != "" {
			u.FullName = acc.FullName
		}
		if acc.Email != "" {
			u.Email = strings.ToLower(strings.TrimSpace(acc.Email))
		}
	})
	if err != nil {
		return models.User{}, err
	}

	return m.GetUser(ctx, id)
}

func (m *Memory) findBy(match func(models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if match(user) {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) update(id models.UserID, apply func(*models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id.String()]
	if !ok {
		return ErrNotFound
	}

	apply(&user)
	user.UpdatedAt = time.Now().Unix()
	m.users[id.String()] = user
	return nil
}
