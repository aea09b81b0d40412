package readout

// DefaultInterval is the number of frames between two readout refreshes.
const DefaultInterval = 10

// Throttle lets one frame in every interval through. It is not safe for
// concurrent use; keep one per frame stream.
type Throttle struct {
	interval int
	count    int
}

// NewThrottle returns a throttle firing every interval frames. Intervals
// below 1 fire on every frame.
func NewThrottle(interval int) *Throttle {
	if interval < 1 {
		interval = 1
	}
	return &Throttle{interval: interval}
}

// Tick counts a frame and reports whether the readout should refresh now.
func (t *Throttle) Tick() bool {
	t.count++
	if t.count%t.interval != 0 {
		return false
	}
	t.count = 0
	return true
}

// Interval returns the configured interval.
func (t *Throttle) Interval() int {
	return t.interval
}
