package subtitle

import (
	"math"
	"time"
)

// Segment is a single timed subtitle unit. Indices are 1-based and unique
// within a document; Start and End are offsets from the start of the media.
type Segment struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// DurationFromSeconds converts fractional seconds into a Duration with
// millisecond precision. Rounding (not truncating) keeps values like 59.999
// from landing one millisecond short after float conversion.
func DurationFromSeconds(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}
