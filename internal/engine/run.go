package engine

import (
	"context"

	"github.com/san-kum/glowsim/internal/config"
)

// Result collects everything a headless run produced.
type Result struct {
	Frames    []Snapshot
	Metrics   map[string]float64
	Completed bool
}

// Run drives a phase to its frame budget without wall-clock pacing, feeding
// every snapshot to the given metrics and collecting all frames. The context
// cancels mid-run; the partial result is returned alongside ctx.Err.
func Run(ctx context.Context, cfg *config.PhaseConfig, metrics ...Metric) (*Result, error) {
	p, err := NewPhase(cfg)
	if err != nil {
		return nil, err
	}

	for _, m := range metrics {
		m.Reset()
	}

	result := &Result{
		Frames:  make([]Snapshot, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for {
		select {
		case <-ctx.Done():
			p.Cancel()
			return result, ctx.Err()
		default:
		}

		snap, ok := p.Advance()
		if !ok {
			break
		}
		for _, m := range metrics {
			m.Observe(snap)
		}
		result.Frames = append(result.Frames, snap)
	}

	result.Completed = p.Frame() == cfg.Frames
	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
