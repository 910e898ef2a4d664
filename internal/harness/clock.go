package harness

import "time"

// Clock supplies the timestamps bracketing each sample. Readings must be
// monotonically non-decreasing; sample accuracy is only as good as the
// clock behind this interface. The process clock is the default, tests
// substitute scripted clocks.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
