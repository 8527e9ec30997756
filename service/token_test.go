package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suraj4812010/Videotube/config"
	"github.com/suraj4812010/Videotube/models"
)

func testTokenConfig() config.Token {
	return config.Token{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    72 * time.Hour,
		ResetTTL:      10 * time.Minute,
	}
}

func TestCodecIssueAndVerify(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testTokenConfig())
	userID := models.NewUserID()

	for _, kind := range []TokenKind{AccessToken, RefreshToken} {
		token, err := codec.Issue(kind, userID)
		require.NoError(t, err, "issue %s token", kind)

		got, err := codec.Verify(token, kind)
		require.NoError(t, err, "verify %s token", kind)
		assert.Equal(t, userID, got)
	}
}

func TestCodecRejectsCrossKind(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testTokenConfig())
	userID := models.NewUserID()

	access, err := codec.Issue(AccessToken, userID)
	require.NoError(t, err)
	refresh, err := codec.Issue(RefreshToken, userID)
	require.NoError(t, err)

	_, err = codec.Verify(access, RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token must not verify as refresh")

	_, err = codec.Verify(refresh, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh token must not verify as access")
}

func TestCodecRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	cfg.AccessTTL = -1 * time.Second
	codec := NewCodec(cfg)

	token, err := codec.Issue(AccessToken, models.NewUserID())
	require.NoError(t, err)

	_, err = codec.Verify(token, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testTokenConfig())

	other := testTokenConfig()
	other.AccessSecret = "a-different-secret"
	otherCodec := NewCodec(other)

	token, err := codec.Issue(AccessToken, models.NewUserID())
	require.NoError(t, err)

	_, err = otherCodec.Verify(token, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecRejectsMalformed(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testTokenConfig())

	_, err := codec.Verify("not.a.jwt", AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
