// Package wellknown registers generators for common library types whose
// internals reflection would generate badly (time.Time has unexported
// fields, uuid.UUID would come out as a random byte array without version
// bits). Generated files blank-import it when a field needs one of them.
package wellknown

import (
	"time"

	"github.com/google/uuid"

	"github.com/teranos/arbgen/arbitrary"
)

func init() {
	arbitrary.Register(Time)
	arbitrary.Register(Duration)
	arbitrary.Register(UUID)
}

// epoch anchors generated times so budget 0 is deterministic.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Time returns a UTC instant within budget days of 2000-01-01.
func Time(src arbitrary.Source) (time.Time, error) {
	b := src.Budget()
	days := src.Intn(2*b+1) - b
	secs := src.Intn(24 * 60 * 60)
	return epoch.AddDate(0, 0, days).Add(time.Duration(secs) * time.Second), nil
}

// Duration returns a duration within ±budget seconds, at millisecond resolution.
func Duration(src arbitrary.Source) (time.Duration, error) {
	b := src.Budget() * 1000
	return time.Duration(src.Intn(2*b+1)-b) * time.Millisecond, nil
}

// UUID returns a version 4 UUID built from src's randomness.
func UUID(src arbitrary.Source) (uuid.UUID, error) {
	var raw [16]byte
	for i := range raw {
		raw[i] = byte(src.Intn(256))
	}
	raw[6] = (raw[6] & 0x0f) | 0x40
	raw[8] = (raw[8] & 0x3f) | 0x80
	return uuid.FromBytes(raw[:])
}
