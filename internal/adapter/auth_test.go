//go:build unit

package adapter

import (
	"plant-pal/internal/core/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) *Authenticator {
	t.Helper()
	a, err := NewAuthenticator([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	return a
}

func TestNewAuthenticator_ShortSecret(t *testing.T) {
	_, err := NewAuthenticator([]byte("short"), time.Hour)
	assert.Error(t, err)

	a, err := NewAuthenticator([]byte(testSecret), 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, a.TTL())
}

func TestSignIn_DemoAccount(t *testing.T) {
	a := newAuth(t)

	u, err := a.SignIn(DemoEmail, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: "1", Email: DemoEmail, Name: "Demo User", Provider: "credentials"}, u)

	u, err = a.SignIn(" demo@plantpal.com ", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, DemoUserID, u.ID)
}

func TestSignIn_DemoEmailIsCaseSensitive(t *testing.T) {
	a := newAuth(t)
	a.newID = func() string { return "fresh-id" }

	u, err := a.SignIn("DEMO@plantpal.com", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, "fresh-id", u.ID)
	assert.Equal(t, "DEMO", u.Name)
	assert.Equal(t, "DEMO@plantpal.com", u.Email)
}

func TestSignIn_AnyOtherPair(t *testing.T) {
	a := newAuth(t)
	a.newID = func() string { return "fixed-id" }

	u, err := a.SignIn("rose@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", u.ID)
	assert.Equal(t, "rose", u.Name)

	// the demo address with the wrong password is an ordinary account
	u, err = a.SignIn(DemoEmail, "nope")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", u.ID)
	assert.Equal(t, "demo", u.Name)
}

func TestSignIn_MissingFields(t *testing.T) {
	a := newAuth(t)

	for _, c := range [][2]string{{"", "pw"}, {"a@b.c", ""}, {"   ", "pw"}} {
		_, err := a.SignIn(c[0], c[1])
		assert.True(t, IsUnauthorized(err), "%q/%q", c[0], c[1])
	}
}

func TestRegister(t *testing.T) {
	a := newAuth(t)

	u, err := a.Register(model.RegisterInput{Name: " Ivy ", Email: "ivy@example.com", Password: "secret", ConfirmPassword: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Ivy", u.Name)

	_, err = a.Register(model.RegisterInput{Email: "ivy@example.com", Password: "secret", ConfirmPassword: "secreT"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = a.Register(model.RegisterInput{Email: "ivy@example.com", Password: "five5", ConfirmPassword: "five5"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = a.Register(model.RegisterInput{Password: "secret", ConfirmPassword: "secret"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestToken_RoundTrip(t *testing.T) {
	a := newAuth(t)
	in := model.User{ID: "google:7", Email: "g@example.com", Name: "G", Image: "https://img", Provider: "google"}

	tok, err := a.IssueToken(in)
	require.NoError(t, err)

	out, err := a.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseToken_Rejects(t *testing.T) {
	a := newAuth(t)

	other, err := NewAuthenticator([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	require.NoError(t, err)
	foreign, err := other.IssueToken(model.User{ID: "1"})
	require.NoError(t, err)
	_, err = a.ParseToken(foreign)
	assert.True(t, IsUnauthorized(err), "wrong key")

	expired, err := (&Authenticator{secret: []byte(testSecret), ttl: -time.Minute}).IssueToken(model.User{ID: "1"})
	require.NoError(t, err)
	_, err = a.ParseToken(expired)
	assert.True(t, IsUnauthorized(err), "expired")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = a.ParseToken(none)
	assert.True(t, IsUnauthorized(err), "alg none")

	_, err = a.ParseToken("garbage")
	assert.True(t, IsUnauthorized(err))
}
