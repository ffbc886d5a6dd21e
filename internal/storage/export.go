package storage

import (
	"encoding/json"
	"io"
)

type FrameRecord struct {
	Tick   int     `json:"tick"`
	TimeMs float64 `json:"time_ms"`
	Phase  string  `json:"phase"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []FrameRecord `json:"frames"`
}

// ExportJSON writes the run metadata and its full trace to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	data := ExportData{Run: *meta, Frames: make([]FrameRecord, len(frames))}
	for i, f := range frames {
		data.Frames[i] = FrameRecord{
			Tick:   f.Tick,
			TimeMs: f.Time.Seconds() * 1000,
			Phase:  f.Phase,
			X:      f.X,
			Y:      f.Y,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
