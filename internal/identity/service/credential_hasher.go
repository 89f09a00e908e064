package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"

	apperrors "github.com/allisson/taskmanager/internal/errors"
	"github.com/allisson/taskmanager/internal/identity/domain"
)

// credentialKeyLength is the size of the per-credential random key. It equals
// the HMAC-SHA-512 output size, so hash and key are both 64 bytes.
const credentialKeyLength = sha512.Size

// credentialHasher implements CredentialHasher using HMAC-SHA-512 with a
// random per-credential key.
type credentialHasher struct{}

// NewCredentialHasher creates a new CredentialHasher instance.
func NewCredentialHasher() CredentialHasher {
	return &credentialHasher{}
}

// Derive generates a fresh 64-byte random key and computes the HMAC-SHA-512
// of the password with it. The key doubles as the salt: storing it alongside
// the hash is what makes later verification possible.
func (h *credentialHasher) Derive(password string) (domain.Credential, error) {
	key := make([]byte, credentialKeyLength)
	if _, err := rand.Read(key); err != nil {
		return domain.Credential{}, apperrors.Wrap(err, "failed to generate credential key")
	}

	return domain.Credential{
		PasswordHash: computeHash(password, key),
		PasswordKey:  key,
	}, nil
}

// Verify recomputes the keyed hash with the stored key and compares it to the
// stored hash in constant time. Incomplete credentials never verify.
func (h *credentialHasher) Verify(password string, credential domain.Credential) bool {
	if !credential.Valid() {
		return false
	}
	return hmac.Equal(computeHash(password, credential.PasswordKey), credential.PasswordHash)
}

// computeHash returns the HMAC-SHA-512 of the UTF-8 password bytes under key.
func computeHash(password string, key []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
