package user

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 1000
	pbkdf2KeyLen     = 64
	saltBytes        = 16
)

// HashPassword derives a PBKDF2-SHA512 key and returns it as "salt:hash", both hex encoded.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)
	return salt + ":" + derive(password, salt), nil
}

// VerifyPassword checks password against a stored "salt:hash" value.
func VerifyPassword(stored, password string) bool {
	salt, hash, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || hash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(derive(password, salt)), []byte(hash)) == 1
}

// The salt is used as its hex text, matching accounts created by earlier deployments.
func derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return hex.EncodeToString(key)
}
