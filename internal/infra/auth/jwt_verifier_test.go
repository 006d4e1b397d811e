package auth_test

import (
	"testing"

	"app/internal/infra/auth"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

const secret = "test_secret"

func signHS256(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return signed
}

// Test: 正しいトークンからsubjectを取り出す
func TestJWTVerifier_Subject(t *testing.T) {
	v := auth.NewJWTVerifier(secret)

	token := signHS256(t, jwt.MapClaims{"sub": "john"}, secret)

	sub, err := v.Subject(token)
	assert.NoError(t, err)
	assert.Equal(t, "john", sub)
}

// Test: 別のシークレットで署名されたトークンは弾く
func TestJWTVerifier_WrongSecret(t *testing.T) {
	v := auth.NewJWTVerifier(secret)

	token := signHS256(t, jwt.MapClaims{"sub": "john"}, "other_secret")

	_, err := v.Subject(token)
	assert.Error(t, err)
}

// Test: HS256以外の署名方式は弾く
func TestJWTVerifier_WrongMethod(t *testing.T) {
	v := auth.NewJWTVerifier(secret)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "john"})
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	_, err = v.Subject(signed)
	assert.Error(t, err)
}

// Test: subが無い・空・壊れた入力
func TestJWTVerifier_BadInput(t *testing.T) {
	v := auth.NewJWTVerifier(secret)

	tests := []struct {
		name  string
		token string
	}{
		{name: "空文字", token: ""},
		{name: "JWTですらない", token: "not-a-jwt"},
		{name: "subなし", token: signHS256(t, jwt.MapClaims{"role": "USER"}, secret)},
		{name: "subが空", token: signHS256(t, jwt.MapClaims{"sub": ""}, secret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Subject(tt.token)
			assert.Error(t, err)
		})
	}
}
