package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store/drivers/sqlite"
	"github.com/aussiebroadwan/foodspot/pkg/cryptox"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testClock is a settable time source.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "foodspot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestKeys(t *testing.T) *jwtx.KeyManager {
	t.Helper()

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   "foodspot",
		Audience: []string{"foodspot-web"},
	}, testNow)
	require.NoError(t, err)
	return km
}

func newTestCodec(t *testing.T, clock *testClock) *SessionCodec {
	t.Helper()

	return &SessionCodec{
		Keys:     newTestKeys(t),
		Issuer:   "foodspot",
		Audience: "foodspot-web",
		Now:      clock.Now,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServices struct {
	store        *sqlite.Store
	hasher       *cryptox.PasswordHasher
	verifier     *CredentialVerifier
	registration *RegistrationService
	profiles     *ProfileService
	foods        *FoodService
	engagement   *EngagementService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	s := newTestStore(t)
	hasher := cryptox.NewPasswordHasher(nil)
	now := func() time.Time { return testNow }

	return &testServices{
		store:        s,
		hasher:       hasher,
		verifier:     &CredentialVerifier{Store: s, Hasher: hasher},
		registration: &RegistrationService{Store: s, Hasher: hasher, Now: now},
		profiles:     &ProfileService{Store: s, Now: now},
		foods:        &FoodService{Store: s, Now: now},
		engagement:   &EngagementService{Store: s, Now: now},
	}
}

func (ts *testServices) registerUser(t *testing.T, name, email, password string) domain.UserAccount {
	t.Helper()

	u, err := ts.registration.RegisterUser(context.Background(), RegisterUserInput{
		Name: name, Email: email, Password: password,
	})
	require.NoError(t, err)
	return u
}

func (ts *testServices) registerBusiness(t *testing.T, name, email, password, address string) domain.BusinessAccount {
	t.Helper()

	b, err := ts.registration.RegisterBusiness(context.Background(), RegisterBusinessInput{
		Name: name, Email: email, Password: password, Address: address,
	})
	require.NoError(t, err)
	return b
}
