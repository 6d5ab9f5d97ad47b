// Package idx generates and parses the ULID identifiers used for every
// persisted FoodSpot record.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a canonical ULID string. IDs sort by creation time.
type ID string

// Zero is the empty ID. It never identifies a stored record.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	mu      sync.Mutex
	once    sync.Once
	entropy *ulid.MonotonicEntropy
)

func source() *ulid.MonotonicEntropy {
	once.Do(func() {
		entropy = ulid.Monotonic(rand.Reader, 0)
	})
	return entropy
}

// New returns an ID stamped with the current UTC time.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt returns an ID stamped with t. IDs generated within the same
// millisecond are strictly increasing.
func NewAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), source()).String())
}

// Parse validates s and returns it as an ID. Lower-case input is accepted and
// normalised to the canonical upper-case form.
func Parse(s string) (ID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

// MustParse is Parse for hard-coded IDs in tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time returns the creation time embedded in the ID, or the zero time when
// the ID is not a valid ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
