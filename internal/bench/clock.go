package bench

import (
	"time"

	"github.com/google/uuid"
)

// Clock reads wall time. Tests inject a stepping clock so timings are exact.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// IDGenerator produces sweep and run IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-ordered UUIDv7 strings, so sweep IDs sort by
// creation time in the store.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
