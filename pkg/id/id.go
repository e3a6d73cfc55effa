package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// TradePrefix marks journal trade ids.
const TradePrefix = "TRD-"

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Monotonic keeps ids from the same millisecond increasing.
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string stamped with the current time.
func New() string {
	return At(time.Now())
}

// At returns a ULID stamped with t. Imported trades use their entry time so
// ids sort the way the trades happened.
func At(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		panic(err)
	}
	return id.String()
}

// NewTrade returns a fresh trade id, "TRD-" followed by a ULID.
func NewTrade() string {
	return TradePrefix + New()
}

// TradeAt returns a trade id stamped with t.
func TradeAt(t time.Time) string {
	return TradePrefix + At(t)
}

// Time extracts the timestamp from a ULID or trade id.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(strings.TrimPrefix(s, TradePrefix))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ulid.Time(u.Time()).UTC(), nil
}
