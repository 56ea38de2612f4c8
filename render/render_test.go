package render

import (
	"bytes"
	"image/png"
	"testing"

	"variance-insight/variance"
)

func fptr(f float64) *float64 { return &f }

func decodePNG(t *testing.T, data []byte) {
	t.Helper()
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
}

func TestPareto(t *testing.T) {
	spec := variance.ParetoSpec{
		Labels:     []string{"Setup", "Material"},
		Counts:     []float64{3, 1},
		Cumulative: []float64{75, 100},
	}
	data, err := Pareto(spec)
	if err != nil {
		t.Fatalf("Pareto failed: %v", err)
	}
	decodePNG(t, data)
}

func TestPareto_EmptySpec(t *testing.T) {
	if _, err := Pareto(variance.ParetoSpec{}); err == nil {
		t.Error("Expected an error for an empty spec")
	}
}

func TestPie(t *testing.T) {
	spec := variance.PieSpec{
		Labels:   []string{"Setup", "Material"},
		Values:   []float64{3, 1},
		Emphasis: []bool{true, false},
	}
	data, err := Pie(spec)
	if err != nil {
		t.Fatalf("Pie failed: %v", err)
	}
	decodePNG(t, data)
}

func TestHeatmap(t *testing.T) {
	spec := variance.HeatmapSpec{
		Machines: []string{"M1", "M2"},
		Dates:    []string{"2024-01-01", "2024-01-02"},
		Mean: [][]*float64{
			{fptr(100), nil},
			{nil, fptr(-10)},
		},
	}
	data, err := Heatmap(spec)
	if err != nil {
		t.Fatalf("Heatmap failed: %v", err)
	}
	decodePNG(t, data)
}

func TestHeatmap_EmptySpec(t *testing.T) {
	if _, err := Heatmap(variance.HeatmapSpec{}); err == nil {
		t.Error("Expected an error for an empty spec")
	}
}

func TestCellColor(t *testing.T) {
	if cellColor(0, 100) != zeroColor {
		t.Error("Zero delay must map to the center color")
	}
	if cellColor(100, 100) != lateColor {
		t.Error("Max positive delay must map to the late color")
	}
	if cellColor(-100, 100) != earlyColor {
		t.Error("Max negative delay must map to the early color")
	}
	// Magnitudes beyond maxAbs clamp instead of overflowing
	if cellColor(250, 100) != lateColor {
		t.Error("Values beyond maxAbs must clamp to the extreme color")
	}
	if cellColor(5, 0) != zeroColor {
		t.Error("maxAbs of 0 must fall back to the center color")
	}
}
