package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"stiff": {
		Multiplier: 1, Friction: 0.92, Bounce: false, FPS: 60, MaxTicks: 2000,
		BoundX: []float64{0, 200}, BoundY: []float64{0, 200},
		Gesture: GestureConfig{From: []float64{0, 0}, To: []float64{150, 0}, DurationMs: 80},
	},
	"ice": {
		Multiplier: 1, Friction: 0.98, Bounce: true, FPS: 60, MaxTicks: 4000,
		Gesture: GestureConfig{From: []float64{0, 0}, To: []float64{60, 30}, DurationMs: 60},
	},
	"heavy": {
		Multiplier: 0.5, Friction: 0.8, Bounce: true, FPS: 60, MaxTicks: 2000,
		Gesture: GestureConfig{From: []float64{0, 0}, To: []float64{200, 0}, DurationMs: 100},
	},
	"boxed": {
		Multiplier: 1, Friction: 0.92, Bounce: true, FPS: 60, MaxTicks: 2000,
		BoundX: []float64{0, 100}, BoundY: []float64{0, 100},
		InitialValues: []float64{50, 50},
		Gesture:       GestureConfig{From: []float64{0, 0}, To: []float64{90, 40}, DurationMs: 50},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.BoundX = append([]float64(nil), p.BoundX...)
	cp.BoundY = append([]float64(nil), p.BoundY...)
	cp.InitialValues = append([]float64(nil), p.InitialValues...)
	cp.Gesture.From = append([]float64(nil), p.Gesture.From...)
	cp.Gesture.To = append([]float64(nil), p.Gesture.To...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
