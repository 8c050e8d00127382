package identity_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/reviewguard/internal/identity"
)

const testKey = "test-signing-key-0123456789"

func testConfig(t *testing.T) *identity.Config {
	t.Helper()
	cfg := &identity.Config{SigningKey: testKey}
	require.NoError(t, cfg.Finalize(nil))
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := testConfig(t)
		assert.Equal(t, "reviewguard", cfg.Issuer)
		assert.Equal(t, 30*time.Second, cfg.LeewayDuration())
		assert.Equal(t, time.Hour, cfg.TokenTTLDuration())
	})

	t.Run("signing key required", func(t *testing.T) {
		var cfg identity.Config
		assert.Error(t, cfg.Finalize(nil))
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_IDENTITY_KEY", "another-signing-key-abcdef")
		t.Setenv("TEST_IDENTITY_LEEWAY", "5s")

		var cfg identity.Config
		require.NoError(t, cfg.Finalize(&identity.Env{
			SigningKey: "TEST_IDENTITY_KEY",
			Leeway:     "TEST_IDENTITY_LEEWAY",
		}))
		assert.Equal(t, "another-signing-key-abcdef", cfg.SigningKey)
		assert.Equal(t, 5*time.Second, cfg.LeewayDuration())
	})

	t.Run("invalid ttl", func(t *testing.T) {
		cfg := identity.Config{SigningKey: testKey, TokenTTL: "forever"}
		assert.Error(t, cfg.Finalize(nil))
	})
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	v := identity.NewVerifier(testConfig(t))

	token, err := v.Issue(identity.Identity{OwnerID: "u-42", Name: "Ada", Role: identity.RoleAdmin})
	require.NoError(t, err)

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity.Identity{OwnerID: "u-42", Name: "Ada", Role: identity.RoleAdmin}, *id)
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifyRejects(t *testing.T) {
	v := identity.NewVerifier(testConfig(t))
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong key", sign(t, jwt.SigningMethodHS256, []byte("some-other-signing-key"), jwt.MapClaims{
			"sub": "u1", "iss": "reviewguard", "exp": exp,
		})},
		{"wrong issuer", sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
			"sub": "u1", "iss": "someone-else", "exp": exp,
		})},
		{"expired beyond leeway", sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
			"sub": "u1", "iss": "reviewguard", "exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"no expiry", sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
			"sub": "u1", "iss": "reviewguard",
		})},
		{"no subject", sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
			"iss": "reviewguard", "exp": exp,
		})},
		{"unsigned", sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{
			"sub": "u1", "iss": "reviewguard", "exp": exp,
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, identity.ErrInvalidToken)
		})
	}
}

func TestVerifyLegacyClaims(t *testing.T) {
	v := identity.NewVerifier(testConfig(t))

	token := sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
		"id":   "64f0c0ffee",
		"role": "user",
		"iss":  "reviewguard",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c0ffee", id.OwnerID)
	assert.Equal(t, identity.RoleUser, id.Role)
}

func TestVerifyUnknownRoleIsUser(t *testing.T) {
	v := identity.NewVerifier(testConfig(t))

	token := sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
		"sub":  "u1",
		"role": "superuser",
		"iss":  "reviewguard",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.False(t, id.IsAdmin())
}

func TestCanAccess(t *testing.T) {
	user := identity.Identity{OwnerID: "u1", Role: identity.RoleUser}
	admin := identity.Identity{OwnerID: "root", Role: identity.RoleAdmin}

	assert.True(t, user.CanAccess("u1"))
	assert.False(t, user.CanAccess("u2"))
	assert.True(t, admin.CanAccess("u2"))
}

func TestMiddleware(t *testing.T) {
	v := identity.NewVerifier(testConfig(t))
	token, err := v.Issue(identity.Identity{OwnerID: "u1", Name: "Ada", Role: identity.RoleUser})
	require.NoError(t, err)

	type observed struct {
		id  *identity.Identity
		err error
	}

	tests := []struct {
		name    string
		headers map[string]string
		check   func(t *testing.T, o observed)
	}{
		{
			name:    "bearer token",
			headers: map[string]string{"Authorization": "Bearer " + token},
			check: func(t *testing.T, o observed) {
				require.NoError(t, o.err)
				assert.Equal(t, "u1", o.id.OwnerID)
			},
		},
		{
			name:    "legacy header",
			headers: map[string]string{identity.LegacyTokenHeader: token},
			check: func(t *testing.T, o observed) {
				require.NoError(t, o.err)
				assert.Equal(t, "Ada", o.id.Name)
			},
		},
		{
			name:    "anonymous",
			headers: nil,
			check: func(t *testing.T, o observed) {
				assert.Nil(t, o.id)
				assert.ErrorIs(t, o.err, identity.ErrUnauthenticated)
			},
		},
		{
			name:    "rejected token",
			headers: map[string]string{"Authorization": "Bearer tampered"},
			check: func(t *testing.T, o observed) {
				assert.Nil(t, o.id)
				assert.ErrorIs(t, o.err, identity.ErrUnauthenticated)
				assert.ErrorIs(t, o.err, identity.ErrInvalidToken)
			},
		},
		{
			name:    "non-bearer scheme",
			headers: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			check: func(t *testing.T, o observed) {
				assert.Nil(t, o.id)
				assert.True(t, errors.Is(o.err, identity.ErrUnauthenticated))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got observed
			h := identity.Middleware(v, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got.id, got.err = identity.Authenticated(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/verdicts", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			tt.check(t, got)
		})
	}
}

func TestAdmin(t *testing.T) {
	ctx := identity.WithIdentity(t.Context(), identity.Identity{OwnerID: "u1", Role: identity.RoleUser})
	_, err := identity.Admin(ctx)
	assert.ErrorIs(t, err, identity.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, identity.MapHTTPStatus(err))

	ctx = identity.WithIdentity(t.Context(), identity.Identity{OwnerID: "root", Role: identity.RoleAdmin})
	id, err := identity.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "root", id.OwnerID)

	_, err = identity.Admin(t.Context())
	assert.Equal(t, http.StatusUnauthorized, identity.MapHTTPStatus(err))
}
