// Package storage records headless phase runs on disk so they can be listed,
// plotted and exported later. The engine itself never persists anything; this
// is a tool-level observer of completed runs.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/glowsim/internal/config"
	"github.com/san-kum/glowsim/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Phase     string             `json:"phase"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Interval  int                `json:"interval_ms"`
	Bodies    int                `json:"bodies"`
	Gravity   float64            `json:"gravity"`
	YGround   float64            `json:"y_ground"`
	Completed bool               `json:"completed"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run as metadata.json plus frames.csv under a fresh run
// directory and returns the run ID.
func (s *Store) Save(cfg *config.PhaseConfig, result *engine.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Phase:     cfg.Name,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Frames:    len(result.Frames),
		Interval:  cfg.IntervalMs,
		Bodies:    cfg.BodyCount(),
		Gravity:   cfg.Gravity,
		YGround:   cfg.Arena.YGround,
		Completed: result.Completed,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	numBodies := len(result.Frames[0].Bodies)
	header := []string{"frame"}
	for i := 0; i < numBodies; i++ {
		header = append(header, fmt.Sprintf("b%d_x", i), fmt.Sprintf("b%d_y", i))
	}
	header = append(header, "particles", "trail", "bounces")
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, snap := range result.Frames {
		row := []string{strconv.Itoa(snap.Frame)}
		for _, b := range snap.Bodies {
			row = append(row,
				strconv.FormatFloat(b.X, 'f', 4, 64),
				strconv.FormatFloat(b.Y, 'f', 4, 64),
			)
		}
		row = append(row,
			strconv.Itoa(len(snap.Particles)),
			strconv.Itoa(len(snap.Trail)),
			strconv.Itoa(len(snap.Bounces)),
		)
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// BodyTrack is the recorded x/y series of one body across a run.
type BodyTrack struct {
	X []float64
	Y []float64
}

// LoadTracks reads frames.csv back into per-body position series plus the
// particle count series.
func (s *Store) LoadTracks(runID string) ([]BodyTrack, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []BodyTrack{}, []float64{}, nil
	}

	// Layout: frame, then x/y pairs, then particles/trail/bounces.
	if len(records[0]) < 4 {
		return nil, nil, fmt.Errorf("malformed frames.csv header in run %s", runID)
	}
	numBodies := (len(records[0]) - 4) / 2

	tracks := make([]BodyTrack, numBodies)
	particles := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != len(records[0]) {
			continue
		}
		for b := 0; b < numBodies; b++ {
			x, err := strconv.ParseFloat(record[1+b*2], 64)
			if err != nil {
				return nil, nil, err
			}
			y, err := strconv.ParseFloat(record[2+b*2], 64)
			if err != nil {
				return nil, nil, err
			}
			tracks[b].X = append(tracks[b].X, x)
			tracks[b].Y = append(tracks[b].Y, y)
		}
		n, err := strconv.ParseFloat(record[1+numBodies*2], 64)
		if err != nil {
			return nil, nil, err
		}
		particles = append(particles, n)
	}

	return tracks, particles, nil
}
