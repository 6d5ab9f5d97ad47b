package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// MasterKeySize is the required length of a master key in bytes.
const MasterKeySize = 32

// ErrCiphertext is returned when sealed data cannot be opened.
var ErrCiphertext = errors.New("cryptox: invalid ciphertext")

// Sealer encrypts small secrets at rest with AES-256-GCM. The AEAD key is
// derived from the master key with HKDF-SHA256 so one master key can serve
// several purposes without key reuse.
//
// Sealed layout: [nonce][ciphertext][tag].
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a purpose-bound key from master and returns a Sealer.
func NewSealer(master []byte, purpose string) (*Sealer, error) {
	if len(master) != MasterKeySize {
		return nil, fmt.Errorf("cryptox: master key must be %d bytes, got %d", MasterKeySize, len(master))
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create gcm: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext. additional is authenticated but not encrypted and
// must be passed unchanged to Open.
func (s *Sealer) Seal(plaintext, additional []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("cryptox: generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, additional), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(sealed, additional []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n+s.aead.Overhead() {
		return nil, ErrCiphertext
	}
	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], additional)
	if err != nil {
		return nil, ErrCiphertext
	}
	return plaintext, nil
}

// RandomKey returns n cryptographically random bytes.
func RandomKey(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cryptox: key size must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("cryptox: read random: %w", err)
	}
	return b, nil
}
