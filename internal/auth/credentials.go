package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ulp_backend/internal/config"
)

// CheckCredentials сверяет пару логин/пароль с allow-list из конфига.
// Значение пароля в конфиге может быть bcrypt-хешем или открытым текстом;
// открытый текст сверяется за константное время.
func CheckCredentials(admins []config.AdminCredential, username, password string) bool {
	ok := false
	for _, cred := range admins {
		if subtle.ConstantTimeCompare([]byte(cred.Username), []byte(username)) != 1 {
			continue
		}
		if isBcryptHash(cred.Password) {
			if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)) == nil {
				ok = true
			}
		} else if subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) == 1 {
			ok = true
		}
	}
	return ok
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// HashPassword создает bcrypt хеш пароля (для заполнения allow-list)
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
