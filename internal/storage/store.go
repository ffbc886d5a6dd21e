package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/impetus/internal/config"
	"github.com/san-kum/impetus/internal/motion"
	"github.com/san-kum/impetus/internal/sim"
)

var ErrBadTrace = errors.New("storage: malformed trace")

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

var traceHeader = []string{"tick", "time_ms", "phase", "x", "y"}

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
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Multiplier float64            `json:"multiplier"`
	Friction   float64            `json:"friction"`
	Bounce     bool               `json:"bounce"`
	BoundX     []float64          `json:"bound_x,omitempty"`
	BoundY     []float64          `json:"bound_y,omitempty"`
	FPS        int                `json:"fps"`
	Ticks      int                `json:"ticks"`
	Frames     int                `json:"frames"`
	Settled    bool               `json:"settled"`
	FinalX     float64            `json:"final_x"`
	FinalY     float64            `json:"final_y"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Bounds returns the bounds the run was made with.
func (m RunMetadata) Bounds() motion.Bounds {
	var b motion.Bounds
	if len(m.BoundX) == 2 {
		b.X = motion.NewRange(m.BoundX[0], m.BoundX[1])
	}
	if len(m.BoundY) == 2 {
		b.Y = motion.NewRange(m.BoundY[0], m.BoundY[1])
	}
	return b
}

// Save writes metadata.json and trace.csv under a new run directory and
// returns the run id.
func (s *Store) Save(preset string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     preset,
		Timestamp:  now,
		Multiplier: cfg.Multiplier,
		Friction:   cfg.Friction,
		Bounce:     cfg.Bounce,
		BoundX:     cfg.BoundX,
		BoundY:     cfg.BoundY,
		FPS:        cfg.FPS,
		Ticks:      result.Ticks,
		Frames:     len(result.Frames),
		Settled:    result.Settled,
		FinalX:     result.Final.X,
		FinalY:     result.Final.Y,
		Metrics:    result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrace(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Tick),
			strconv.FormatFloat(float64(fr.Time)/float64(time.Millisecond), 'f', 3, 64),
			fr.Phase,
			strconv.FormatFloat(fr.X, 'g', -1, 64),
			strconv.FormatFloat(fr.Y, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Directories without
// valid metadata are skipped.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(traceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		f, err := parseFrame(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadTrace, i+1, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseFrame(rec []string) (sim.Frame, error) {
	tick, err := strconv.Atoi(rec[0])
	if err != nil {
		return sim.Frame{}, err
	}
	ms, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return sim.Frame{}, err
	}
	x, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return sim.Frame{}, err
	}
	y, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return sim.Frame{}, err
	}
	return sim.Frame{
		Tick:  tick,
		Time:  time.Duration(ms * float64(time.Millisecond)),
		Phase: rec[2],
		X:     x,
		Y:     y,
	}, nil
}
