package physics

import "testing"

func TestTrailSampling(t *testing.T) {
	tr := NewTrailRecorder(3, 15)

	for frame := 0; frame < 9; frame++ {
		tr.Observe(frame, float64(frame), 0)
	}

	// Frames 0, 3, 6 sampled.
	if tr.Len() != 3 {
		t.Fatalf("expected 3 markers, got %d", tr.Len())
	}
	want := []float64{0, 3, 6}
	for i, m := range tr.Markers() {
		if m.X != want[i] {
			t.Errorf("marker %d: x=%f, want %f", i, m.X, want[i])
		}
	}
}

func TestTrailCapFIFO(t *testing.T) {
	tr := NewTrailRecorder(1, 15)

	for frame := 0; frame < 40; frame++ {
		tr.Observe(frame, float64(frame), 0)
		if tr.Len() > 15 {
			t.Fatalf("frame %d: cap exceeded, len=%d", frame, tr.Len())
		}
	}

	if tr.Len() != 15 {
		t.Fatalf("expected 15 markers, got %d", tr.Len())
	}
	// Oldest evicted first: markers hold frames 25..39.
	if tr.Markers()[0].X != 25 {
		t.Errorf("oldest marker x=%f, want 25", tr.Markers()[0].X)
	}
	if tr.Markers()[14].X != 39 {
		t.Errorf("newest marker x=%f, want 39", tr.Markers()[14].X)
	}
}

func TestTrailDegenerateParams(t *testing.T) {
	tr := NewTrailRecorder(0, 0)
	tr.Observe(0, 1, 2)
	tr.Observe(1, 3, 4)

	// Clamped to every=1, cap=1.
	if tr.Len() != 1 {
		t.Fatalf("expected 1 marker, got %d", tr.Len())
	}
	if tr.Markers()[0].X != 3 {
		t.Errorf("expected newest marker retained, got x=%f", tr.Markers()[0].X)
	}
}

func TestTrailClear(t *testing.T) {
	tr := NewTrailRecorder(1, 5)
	tr.Observe(0, 1, 1)
	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("expected 0 after clear, got %d", tr.Len())
	}
}
