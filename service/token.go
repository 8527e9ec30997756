package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/suraj4812010/Videotube/config"
	"github.com/suraj4812010/Videotube/models"
)

// ErrInvalidToken is returned by Verify for any token that fails the
// cryptographic checks: bad signature, wrong kind, malformed or expired.
var ErrInvalidToken = errors.New("invalid token")

// TokenKind selects which secret and expiry a token is signed and
// verified with.
type TokenKind int

const (
	AccessToken TokenKind = iota
	RefreshToken
)

func (k TokenKind) String() string {
	if k == RefreshToken {
		return "refresh"
	}
	return "access"
}

// Claims is the payload embedded in both token kinds.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens. It is stateless: validity here
// is purely cryptographic plus expiry, never checked against storage.
type Codec struct {
	cfg config.Token
}

func NewCodec(cfg config.Token) Codec {
	return Codec{cfg: cfg}
}

// Issue produces a signed token of the given kind embedding the user id.
func (c Codec) Issue(kind TokenKind, userID models.UserID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl(kind))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret(kind))
}

// Verify checks signature and expiry against the secret for kind and
// returns the embedded user id. A token signed for one kind never
// verifies as the other because the secrets are independent.
func (c Codec) Verify(tokenString string, kind TokenKind) (models.UserID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret(kind), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return models.UserID{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.UserID{}, ErrInvalidToken
	}

	userID, err := models.ParseUserID(claims.UserID)
	if err != nil {
		return models.UserID{}, fmt.Errorf("%w: malformed user id", ErrInvalidToken)
	}

	return userID, nil
}

func (c Codec) secret(kind TokenKind) []byte {
	if kind == RefreshToken {
		return []byte(c.cfg.RefreshSecret)
	}
	return []byte(c.cfg.AccessSecret)
}

func (c Codec) ttl(kind TokenKind) time.Duration {
	if kind == RefreshToken {
		return c.cfg.RefreshTTL
	}
	return c.cfg.AccessTTL
}
