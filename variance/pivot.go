package variance

import (
	"encoding/json"
	"math"
	"sort"
)

// DateLayout : format des dates dans la grille pivot et le rapport.
// Le tri lexicographique de ce format suit l'ordre chronologique.
const DateLayout = "2006-01-02"

type PivotKey struct {
	Machine string `json:"machine"`
	Date    string `json:"date"`
}

type PivotCell struct {
	Mean  float64  `json:"mean"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Std   *float64 `json:"std"` // nil pour un groupe de taille 1 (estimateur sans biais)
	Count int      `json:"count"`
}

// PivotGrid : statistiques du delay par (machine, date). Les couples
// sans données n'ont pas de cellule, jamais de zéro synthétique.
type PivotGrid struct {
	Machines []string                `json:"machines"`
	Dates    []string                `json:"dates"`
	Cells    map[PivotKey]*PivotCell `json:"-"`
}

func (g PivotGrid) Cell(machine, date string) (*PivotCell, bool) {
	c, ok := g.Cells[PivotKey{Machine: machine, Date: date}]
	return c, ok
}

func (g PivotGrid) Empty() bool { return len(g.Cells) == 0 }

type pivotCellJSON struct {
	PivotKey
	PivotCell
}

// MarshalJSON aplatit la map (clé struct non sérialisable) en liste de
// cellules triée machine puis date, pour une sortie déterministe.
func (g PivotGrid) MarshalJSON() ([]byte, error) {
	cells := make([]pivotCellJSON, 0, len(g.Cells))
	for _, m := range g.Machines {
		for _, d := range g.Dates {
			if c, ok := g.Cell(m, d); ok {
				cells = append(cells, pivotCellJSON{PivotKey{m, d}, *c})
			}
		}
	}
	return json.Marshal(struct {
		Machines []string        `json:"machines"`
		Dates    []string        `json:"dates"`
		Cells    []pivotCellJSON `json:"cells"`
	}{g.Machines, g.Dates, cells})
}

// Pivot groupe les records par (machine, date) et calcule
// mean/min/max/std (écart-type échantillon) du delay par groupe. Les
// deux clés sont requises, les records incomplets restent hors grille.
func Pivot(rs RecordSet) PivotGrid {
	groups := map[PivotKey][]float64{}
	for _, r := range rs {
		if r.Machine == nil || r.Date == nil || r.DelayMin == nil {
			continue
		}
		key := PivotKey{Machine: *r.Machine, Date: r.Date.Format(DateLayout)}
		groups[key] = append(groups[key], *r.DelayMin)
	}

	grid := PivotGrid{Cells: make(map[PivotKey]*PivotCell, len(groups))}
	machineSet := map[string]bool{}
	dateSet := map[string]bool{}
	for key, values := range groups {
		machineSet[key.Machine] = true
		dateSet[key.Date] = true
		grid.Cells[key] = newCell(values)
	}
	for m := range machineSet {
		grid.Machines = append(grid.Machines, m)
	}
	for d := range dateSet {
		grid.Dates = append(grid.Dates, d)
	}
	sort.Strings(grid.Machines)
	sort.Strings(grid.Dates)
	return grid
}

func newCell(values []float64) *PivotCell {
	c := &PivotCell{Count: len(values), Min: values[0], Max: values[0]}
	sum := 0.0
	for _, v := range values {
		sum += v
		if v < c.Min {
			c.Min = v
		}
		if v > c.Max {
			c.Max = v
		}
	}
	c.Mean = sum / float64(len(values))
	if len(values) > 1 {
		ss := 0.0
		for _, v := range values {
			d := v - c.Mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(len(values)-1))
		c.Std = &std
	}
	return c
}
