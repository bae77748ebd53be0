package auth

import (
	"testing"
	"time"

	"eventcreator/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("dev-client", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, "dev-client", claims.Subject)
	assert.Equal(t, "eventcreator", claims.Issuer)
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	good, err := NewJWTIssuer(secret).Issue("dev-client", time.Hour)
	require.NoError(t, err)
	otherKey, err := NewJWTIssuer("other-secret").Issue("dev-client", time.Hour)
	require.NoError(t, err)

	expiredIssuer := &jwtIssuer{secret: []byte(secret), now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
	expired, err := expiredIssuer.Issue("dev-client", time.Hour)
	require.NoError(t, err)

	noSubject, err := NewJWTIssuer(secret).Issue("", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"valid", good, "dev-client", false},
		{"wrong key", otherKey, "", true},
		{"expired", expired, "", true},
		{"no subject", noSubject, "", true},
		{"garbage", "not-a-token", "", true},
	}

	v := NewJWTVerifier(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Verify(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
