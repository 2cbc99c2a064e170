package auth

import (
	"strings"
	"sync"

	"github.com/netriktechworks/site-backend/errs"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore holds the administrator allow-list: username to bcrypt
// hash. It is built once at startup and never mutated.
type CredentialStore struct {
	hashes map[string][]byte
}

// NewCredentialStore copies admins (username -> bcrypt hash) into a store.
// Blank usernames or hashes are skipped.
func NewCredentialStore(admins map[string]string) *CredentialStore {
	hashes := make(map[string][]byte, len(admins))
	for username, hash := range admins {
		username = strings.TrimSpace(username)
		hash = strings.TrimSpace(hash)
		if username == "" || hash == "" {
			continue
		}
		hashes[username] = []byte(hash)
	}
	return &CredentialStore{hashes: hashes}
}

// HashPassword returns a bcrypt hash suitable for ADMIN_CREDENTIALS.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Allowed reports whether username is an administrator.
func (s *CredentialStore) Allowed(username string) bool {
	_, ok := s.hashes[username]
	return ok
}

// Len returns the number of configured administrators.
func (s *CredentialStore) Len() int {
	return len(s.hashes)
}

// Verify checks password against the stored hash. Unknown users and wrong
// passwords fail with the same error.
func (s *CredentialStore) Verify(username, password string) error {
	hash, ok := s.hashes[username]
	if !ok {
		// Spend the same time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return errs.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return errs.NewInvalidCredentialsError()
	}
	return nil
}

var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-password"), bcrypt.DefaultCost)
	return hash
})
