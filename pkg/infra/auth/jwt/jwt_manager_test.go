package jwt

import (
	"testing"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/config"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagerWithSecret(secret string) Manager {
	return NewJwtManager(&config.AuthConfig{SecretKey: secret, Issuer: "trustchat", TokenTTL: time.Hour})
}

func signTokenWithSecret(secret string, method jwtlib.SigningMethod, claims jwtlib.Claims) (string, error) {
	token := jwtlib.NewWithClaims(method, claims)
	return token.SignedString([]byte(secret))
}

func TestCreateToken_AndVerify(t *testing.T) {
	mgr := newManagerWithSecret("test-secret")

	token, err := mgr.CreateToken(Identity{UID: "user-42", Email: "taro@example.com", EmailVerified: true})
	require.NoError(t, err)

	identity, err := mgr.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "user-42", Email: "taro@example.com", EmailVerified: true}, identity)
}

func TestCreateToken_RequiresUID(t *testing.T) {
	_, err := newManagerWithSecret("s").CreateToken(Identity{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrMissingUID)
}

func TestVerifyToken_Rejects(t *testing.T) {
	valid := registeredFor("user-1", "trustchat", time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		secret  string
		method  jwtlib.SigningMethod
		claims  *Claims
		wantErr error
	}{
		{"wrong secret", "other-secret", jwtlib.SigningMethodHS256, valid, ErrInvalidToken},
		{"wrong algorithm", "test-secret", jwtlib.SigningMethodHS512, valid, ErrInvalidToken},
		{"expired", "test-secret", jwtlib.SigningMethodHS256, registeredFor("user-1", "trustchat", time.Now().Add(-time.Minute)), ErrExpiredToken},
		{"wrong issuer", "test-secret", jwtlib.SigningMethodHS256, registeredFor("user-1", "someone-else", time.Now().Add(time.Hour)), ErrInvalidToken},
		{"no subject", "test-secret", jwtlib.SigningMethodHS256, registeredFor("", "trustchat", time.Now().Add(time.Hour)), ErrMissingUID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := signTokenWithSecret(tt.secret, tt.method, tt.claims)
			require.NoError(t, err)

			identity, err := newManagerWithSecret("test-secret").VerifyToken(signed)
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := newManagerWithSecret("test-secret").VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func registeredFor(subject, issuer string, expires time.Time) *Claims {
	return &Claims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwtlib.NewNumericDate(expires),
	}}
}
