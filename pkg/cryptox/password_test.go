package cryptox_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "password123"},
		{"symbols", "P@ssw0rd!#$%^&*()"},
		{"long", strings.Repeat("a", 100)},
		{"unicode", "пароль🔒密码"},
		{"whitespace", "   spaces   "},
	}

	h := cryptox.NewPasswordHasher(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
			require.Len(t, strings.Split(hash, "$"), 6)

			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h := cryptox.NewPasswordHasher(nil)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyPasswordMismatch(t *testing.T) {
	h := cryptox.NewPasswordHasher(nil)
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{"", "Correct-Password", "correct-password ", strings.Repeat("x", 10000)} {
		require.ErrorIs(t, h.Verify(wrong, hash), cryptox.ErrPasswordMismatch)
	}
}

func TestPepperChangesHash(t *testing.T) {
	peppered := cryptox.NewPasswordHasher([]byte("kitchen-secret"))
	plain := cryptox.NewPasswordHasher(nil)

	hash, err := peppered.Hash("pw1")
	require.NoError(t, err)

	require.NoError(t, peppered.Verify("pw1", hash))

	// Without the pepper the same password no longer verifies
	require.ErrorIs(t, plain.Verify("pw1", hash), cryptox.ErrPasswordMismatch)
}

func TestVerifyLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("pw2"), bcrypt.MinCost)
	require.NoError(t, err)

	// Legacy hashes ignore the pepper
	h := cryptox.NewPasswordHasher([]byte("kitchen-secret"))
	require.NoError(t, h.Verify("pw2", string(legacy)))
	require.ErrorIs(t, h.Verify("nope", string(legacy)), cryptox.ErrPasswordMismatch)
	require.True(t, cryptox.IsBcryptHash(string(legacy)))
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	h := cryptox.NewPasswordHasher(nil)

	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=19456",
		"$argon2id$v=19$invalid$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	} {
		require.ErrorIs(t, h.Verify("pw", bad), cryptox.ErrUnsupportedHash, bad)
	}
}
