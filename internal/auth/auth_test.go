package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ulp_backend/internal/config"
)

func TestCheckCredentials_Plaintext(t *testing.T) {
	admins := []config.AdminCredential{{Username: "admin", Password: "ulp@2024"}}

	assert.True(t, CheckCredentials(admins, "admin", "ulp@2024"))
	assert.False(t, CheckCredentials(admins, "admin", "wrong"))
	assert.False(t, CheckCredentials(admins, "root", "ulp@2024"))
	assert.False(t, CheckCredentials(nil, "admin", "ulp@2024"))
}

func TestCheckCredentials_BcryptHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)

	admins := []config.AdminCredential{{Username: "admin", Password: hash}}

	assert.True(t, CheckCredentials(admins, "admin", "s3cret-pass"))
	assert.False(t, CheckCredentials(admins, "admin", hash), "сам хеш паролем не является")
	assert.False(t, CheckCredentials(admins, "admin", "wrong"))
}

func TestCheckCredentials_MultipleAdmins(t *testing.T) {
	admins := []config.AdminCredential{
		{Username: "admin", Password: "first"},
		{Username: "manager", Password: "second"},
	}

	assert.True(t, CheckCredentials(admins, "manager", "second"))
	assert.False(t, CheckCredentials(admins, "manager", "first"), "пароль чужой учетки не подходит")
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("test-secret", "admin", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken("test-secret", token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", "admin", time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("test-secret", "admin", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken("test-secret", token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("test-secret", "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
