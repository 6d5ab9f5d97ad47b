package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Argon2id parameters for newly created hashes. Stored hashes carry their own
// parameters so these can be raised without invalidating existing accounts.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	// ErrPasswordMismatch is returned when a password does not match its hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrUnsupportedHash is returned for hashes in an unknown format.
	ErrUnsupportedHash = errors.New("unsupported password hash format")
)

// PasswordHasher hashes account passwords with Argon2id. When a pepper is
// configured the password is pre-hashed with HMAC-SHA256 keyed by it, so a
// leaked database alone is not enough to brute force hashes offline.
type PasswordHasher struct {
	pepper []byte
}

// NewPasswordHasher returns a hasher using pepper. A nil or empty pepper
// disables peppering.
func NewPasswordHasher(pepper []byte) *PasswordHasher {
	return &PasswordHasher{pepper: pepper}
}

func (h *PasswordHasher) prepare(password string) []byte {
	if len(h.pepper) == 0 {
		return []byte(password)
	}
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// Hash returns a PHC encoded Argon2id hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	sum := argon2.IDKey(h.prepare(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify checks password against encoded. Argon2id PHC strings and bcrypt
// hashes ($2a$, $2b$, $2y$) are accepted; bcrypt hashes are never peppered.
// The comparison is constant time in both cases.
func (h *PasswordHasher) Verify(password, encoded string) error {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return h.verifyArgon2id(password, encoded)
	case IsBcryptHash(encoded):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedHash, err)
		}
		return nil
	default:
		return ErrUnsupportedHash
	}
}

// IsBcryptHash reports whether encoded looks like a bcrypt hash.
func IsBcryptHash(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

func (h *PasswordHasher) verifyArgon2id(password, encoded string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return fmt.Errorf("%w: expected 6 segments", ErrUnsupportedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return fmt.Errorf("%w: bad version", ErrUnsupportedHash)
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: bad parameters", ErrUnsupportedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: bad salt", ErrUnsupportedHash)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return fmt.Errorf("%w: bad digest", ErrUnsupportedHash)
	}

	got := argon2.IDKey(h.prepare(password), salt, iters, mem, par, uint32(len(want))) // #nosec G115
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
