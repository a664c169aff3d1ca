package kernel

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	TrackingNumberPrefix = "PRC"
	StaffIDPrefix        = "STF"

	trackingNumberRandomBytes = 3
	staffIDRandomBytes        = 2
	pickupCodeRandomBytes     = 4

	// DefaultGeneratorAttempts bounds regeneration when a value repeats
	// within the current day window.
	DefaultGeneratorAttempts = 16

	dateLayout = "20060102"
)

var (
	trackingNumberPattern = regexp.MustCompile(`^[A-Z]{2,5}-\d{8}-[0-9A-F]{6}$`)
	staffIDPattern        = regexp.MustCompile(`^[A-Z]{2,5}-\d{8}-[0-9A-F]{4}$`)
	pickupCodePattern     = regexp.MustCompile(`^[0-9A-F]{8}$`)

	// ErrIdentifierSpaceExhausted is returned when every attempt produced a
	// value already issued in the current window.
	ErrIdentifierSpaceExhausted = errs.NewObjectAlreadyExistsError("generated identifier", nil)
)

// TrackingNumber has the form PREFIX-YYYYMMDD-XXXXXX (6 uppercase hex chars).
type TrackingNumber string

func NewTrackingNumber(s string) (TrackingNumber, error) {
	if !trackingNumberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("tracking number", fmt.Errorf("%q does not match PREFIX-YYYYMMDD-XXXXXX", s))
	}
	return TrackingNumber(s), nil
}

func (t TrackingNumber) String() string { return string(t) }

// StaffID is an employee identifier of the form PREFIX-YYYYMMDD-XXXX.
type StaffID string

func NewStaffID(s string) (StaffID, error) {
	if !staffIDPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("employee id", fmt.Errorf("%q does not match PREFIX-YYYYMMDD-XXXX", s))
	}
	return StaffID(s), nil
}

func (s StaffID) String() string { return string(s) }

// PickupCode lets an unregistered recipient claim a parcel: 8 uppercase hex chars.
type PickupCode string

func NewPickupCode(s string) (PickupCode, error) {
	if !pickupCodePattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("pickup code", fmt.Errorf("%q is not 8 uppercase hex characters", s))
	}
	return PickupCode(s), nil
}

func (p PickupCode) String() string { return string(p) }

// RandomSource returns n random bytes.
type RandomSource func(n int) ([]byte, error)

// uuidRandom draws from a version 4 UUID. Only the first six bytes are used
// since byte 6 carries the version nibble.
func uuidRandom(n int) ([]byte, error) {
	if n > 6 {
		return nil, fmt.Errorf("uuid random source supports at most 6 bytes, got %d", n)
	}
	u, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return u[:n], nil
}

// IdentifierGenerator produces tracking numbers, staff ids and pickup codes.
//
// Values issued during the current day are remembered and never handed out
// twice by the same generator; storage unique constraints remain the final
// authority across processes.
type IdentifierGenerator struct {
	mu          sync.Mutex
	now         func() time.Time
	random      RandomSource
	maxAttempts int

	window string
	issued map[string]struct{}
}

type GeneratorOption func(*IdentifierGenerator)

func WithClock(now func() time.Time) GeneratorOption {
	return func(g *IdentifierGenerator) { g.now = now }
}

func WithRandomSource(src RandomSource) GeneratorOption {
	return func(g *IdentifierGenerator) { g.random = src }
}

func WithMaxAttempts(n int) GeneratorOption {
	return func(g *IdentifierGenerator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func NewIdentifierGenerator(opts ...GeneratorOption) *IdentifierGenerator {
	g := &IdentifierGenerator{
		now:         time.Now,
		random:      uuidRandom,
		maxAttempts: DefaultGeneratorAttempts,
		issued:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *IdentifierGenerator) NextTrackingNumber() (TrackingNumber, error) {
	v, err := g.next(TrackingNumberPrefix, trackingNumberRandomBytes)
	return TrackingNumber(v), err
}

func (g *IdentifierGenerator) NextStaffID() (StaffID, error) {
	v, err := g.next(StaffIDPrefix, staffIDRandomBytes)
	return StaffID(v), err
}

func (g *IdentifierGenerator) NextPickupCode() (PickupCode, error) {
	v, err := g.next("", pickupCodeRandomBytes)
	return PickupCode(v), err
}

func (g *IdentifierGenerator) next(prefix string, randomBytes int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := g.now().UTC().Format(dateLayout)
	if day != g.window {
		g.window = day
		g.issued = make(map[string]struct{})
	}

	for range g.maxAttempts {
		raw, err := g.random(randomBytes)
		if err != nil {
			return "", err
		}

		suffix := strings.ToUpper(hex.EncodeToString(raw))
		value := suffix
		if prefix != "" {
			value = fmt.Sprintf("%s-%s-%s", prefix, day, suffix)
		}

		if _, seen := g.issued[value]; seen {
			continue
		}
		g.issued[value] = struct{}{}
		return value, nil
	}

	return "", ErrIdentifierSpaceExhausted
}
