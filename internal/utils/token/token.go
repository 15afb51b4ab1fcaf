// Package token хэширует и проверяет токен администратора
package token

import (
	"golang.org/x/crypto/bcrypt"
)

// Hash возвращает bcrypt-хэш токена для ADMIN_TOKEN_HASH
func Hash(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify сравнивает токен с bcrypt-хэшем
func Verify(hash []byte, token string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(token)) == nil
}
