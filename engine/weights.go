package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Weights are the base coefficients of the evaluation terms. Mobility and
// Frontier are scaled by (1-phase), Corners, Stability and Positional by
// (1+phase). Terminal multiplies the final disc difference and must dwarf
// the heuristic blend.
type Weights struct {
	Mobility   float64 `json:"mobility"`
	Corners    float64 `json:"corners"`
	Frontier   float64 `json:"frontier"`
	Positional float64 `json:"positional"`
	Stability  float64 `json:"stability"`
	Terminal   float64 `json:"terminal"`
}

func DefaultWeights() Weights {
	return Weights{
		Mobility:   2,
		Corners:    2,
		Frontier:   2,
		Positional: 2,
		Stability:  2,
		Terminal:   100,
	}
}

// WeightNames lists the option names accepted by Set, in display order.
var WeightNames = []string{"mobility", "corners", "frontier", "positional", "stability", "terminal"}

func (w *Weights) field(name string) (*float64, bool) {
	switch strings.ToLower(name) {
	case "mobility":
		return &w.Mobility, true
	case "corners":
		return &w.Corners, true
	case "frontier":
		return &w.Frontier, true
	case "positional":
		return &w.Positional, true
	case "stability":
		return &w.Stability, true
	case "terminal":
		return &w.Terminal, true
	}
	return nil, false
}

// Get returns the named coefficient.
func (w Weights) Get(name string) (float64, bool) {
	f, ok := w.field(name)
	if !ok {
		return 0, false
	}
	return *f, true
}

// Set parses value and stores it in the named coefficient.
func (w *Weights) Set(name, value string) error {
	f, ok := w.field(name)
	if !ok {
		return fmt.Errorf("unknown weight %q", name)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("weight %s: %w", name, err)
	}
	if v < 0 {
		return fmt.Errorf("weight %s: negative value %v", name, v)
	}
	*f = v
	return nil
}

// SaveWeights writes w as indented JSON through a temporary file.
func SaveWeights(path string, w Weights) error {
	tmp := path + ".tmp"
	b, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadWeights reads a JSON weights file. Missing fields keep their defaults.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("weights %s: %w", path, err)
	}
	return w, nil
}
