package physics

const (
	DefaultTrailEvery = 3
	DefaultTrailCap   = 15
)

// TrailMarker is a sampled body position.
type TrailMarker struct {
	X, Y float64
}

// TrailRecorder keeps a bounded FIFO of recent body positions, sampling one
// marker every `every` ticks and evicting the oldest once `cap` is exceeded.
type TrailRecorder struct {
	every   int
	cap     int
	markers []TrailMarker
}

func NewTrailRecorder(every, capacity int) *TrailRecorder {
	if every < 1 {
		every = 1
	}
	if capacity < 1 {
		capacity = 1
	}
	return &TrailRecorder{
		every:   every,
		cap:     capacity,
		markers: make([]TrailMarker, 0, capacity),
	}
}

// Observe records the position when the frame lands on a sampling tick.
func (t *TrailRecorder) Observe(frame int, x, y float64) {
	if frame%t.every != 0 {
		return
	}
	t.markers = append(t.markers, TrailMarker{X: x, Y: y})
	if len(t.markers) > t.cap {
		copy(t.markers, t.markers[1:])
		t.markers = t.markers[:t.cap]
	}
}

// Markers exposes the recorded markers, oldest first. Callers must copy
// before retaining.
func (t *TrailRecorder) Markers() []TrailMarker { return t.markers }

func (t *TrailRecorder) Len() int { return len(t.markers) }

// Clear drops all markers.
func (t *TrailRecorder) Clear() { t.markers = t.markers[:0] }
