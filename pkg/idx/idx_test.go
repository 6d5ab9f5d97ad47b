package idx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseNormalisesCase(t *testing.T) {
	id := idx.New()

	parsed, err := idx.Parse(" " + strings.ToLower(id.String()) + " ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "../etc/passwd"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()

	// Same timestamp, so ordering comes from the monotonic entropy
	prev := idx.NewAt(at)
	for range 100 {
		next := idx.NewAt(at)
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	require.WithinDuration(t, tm, idx.NewAt(tm).Time(), time.Millisecond)
	require.True(t, idx.ID("bogus").Time().IsZero())
}
