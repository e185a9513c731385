package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"print3d-order-admin/internal/pkg/config"
	"print3d-order-admin/pkg"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckCredentialsPlain(t *testing.T) {
	a := NewAuthManager(&config.AdminCfg{Username: "admin", Password: "secret"})

	assert.True(t, a.CheckCredentials("", "secret"))
	assert.True(t, a.CheckCredentials("admin", "secret"))
	assert.False(t, a.CheckCredentials("root", "secret"))
	assert.False(t, a.CheckCredentials("admin", "Secret"))
	assert.False(t, a.CheckCredentials("", ""))
}

func TestCheckCredentialsHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	a := NewAuthManager(&config.AdminCfg{Username: "admin", Password: "ignored", PasswordHash: string(hash)})

	assert.True(t, a.CheckCredentials("admin", "s3cret"))
	assert.False(t, a.CheckCredentials("admin", "ignored"))
}

func newAuth() *AuthManager {
	return NewAuthManager(&config.AdminCfg{
		Username:  "admin",
		Password:  "secret",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

func TestParseExpiredToken(t *testing.T) {
	a := newAuth()
	a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := a.Mint(httptest.NewRecorder())
	require.NoError(t, err)
	a.now = time.Now

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err = a.ParseFromRequest(req)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestParseForeignToken(t *testing.T) {
	a := newAuth()

	other := NewAuthManager(&config.AdminCfg{Username: "admin", JWTSecret: "other-secret", TokenTTL: time.Hour})
	token, err := other.Mint(httptest.NewRecorder())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err = a.ParseFromRequest(req)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	a := newAuth()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	_, err = a.ParseFromRequest(req)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestParseMalformedHeader(t *testing.T) {
	a := newAuth()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	_, err := a.ParseFromRequest(req)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	_, err = a.ParseFromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}
