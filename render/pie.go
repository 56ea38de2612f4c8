package render

import (
	"bytes"
	"errors"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"variance-insight/variance"
)

// Pie rend la répartition des causes. Les parts à égalité sur le
// maximum sont toutes détourées (équivalent de l'explode du tableau de
// bord d'origine).
func Pie(spec variance.PieSpec) ([]byte, error) {
	if len(spec.Values) == 0 {
		return nil, errors.New("empty pie spec")
	}
	values := make([]chart.Value, len(spec.Values))
	for i := range spec.Values {
		v := chart.Value{
			Value: spec.Values[i],
			Label: fmt.Sprintf("%s (%.0f jobs)", spec.Labels[i], spec.Values[i]),
		}
		if spec.Emphasis[i] {
			v.Style = chart.Style{
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 5,
				FontSize:    12,
			}
		}
		values[i] = v
	}
	pc := chart.PieChart{
		Title:  "Reasons",
		Width:  600,
		Height: 600,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}
