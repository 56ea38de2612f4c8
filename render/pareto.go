package render

import (
	"bytes"
	"errors"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"variance-insight/variance"
)

// Couleur des barres du Pareto, reprise du tableau de bord d'origine
var barColor = drawing.Color{R: 0x69, G: 0xb3, B: 0xa2, A: 0xff}

// Pareto rend la distribution des causes en PNG. Le cumul est annoté
// sur chaque barre (le moteur de barres ne superpose pas de série
// secondaire, ParetoSpec garde la série complète pour les
// consommateurs qui savent la tracer).
func Pareto(spec variance.ParetoSpec) ([]byte, error) {
	if len(spec.Labels) == 0 {
		return nil, errors.New("empty pareto spec")
	}
	bars := make([]chart.Value, len(spec.Labels))
	for i := range spec.Labels {
		bars[i] = chart.Value{
			Value: spec.Counts[i],
			Label: fmt.Sprintf("%s (%.0f%%)", spec.Labels[i], spec.Cumulative[i]),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}
	bc := chart.BarChart{
		Title:      "Pareto – Reasons",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		Width:      900,
		Height:     450,
		BarWidth:   60,
		XAxis:      chart.Shown(),
		YAxis:      chart.YAxis{Style: chart.Shown()},
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pareto: %w", err)
	}
	return buf.Bytes(), nil
}
