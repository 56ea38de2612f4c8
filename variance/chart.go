package variance

// Spécifications déclaratives des graphiques. La mise en forme des
// données (ordre, cumul, emphase) se décide ici, le rendu bitmap est
// l'affaire du package render.

// ParetoSpec : distribution complète des causes (non tronquée),
// décroissante, avec la série cumulée en pourcentage.
type ParetoSpec struct {
	Labels     []string  `json:"labels"`
	Counts     []float64 `json:"counts"`
	Cumulative []float64 `json:"cumulative"` // croissante, termine à 100
}

// BuildParetoSpec retourne ok=false quand aucune cause n'est renseignée
// (le rapport omet alors la section Pareto).
func BuildParetoSpec(rs RecordSet) (ParetoSpec, bool) {
	ranking := RankReasons(rs, 0)
	if len(ranking) == 0 {
		return ParetoSpec{}, false
	}
	spec := ParetoSpec{
		Labels:     make([]string, len(ranking)),
		Counts:     make([]float64, len(ranking)),
		Cumulative: make([]float64, len(ranking)),
	}
	total := 0.0
	for _, e := range ranking {
		total += e.Value
	}
	running := 0.0
	for i, e := range ranking {
		spec.Labels[i] = e.Key
		spec.Counts[i] = e.Value
		running += e.Value
		spec.Cumulative[i] = running / total * 100
	}
	return spec, true
}

// PieSpec : une part par cause, libellé avec le compte. Toutes les
// parts à égalité sur le maximum sont mises en avant.
type PieSpec struct {
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
	Emphasis []bool    `json:"emphasis"`
}

func BuildPieSpec(rs RecordSet) (PieSpec, bool) {
	ranking := RankReasons(rs, 0)
	if len(ranking) == 0 {
		return PieSpec{}, false
	}
	max := ranking[0].Value // déjà trié décroissant
	spec := PieSpec{
		Labels:   make([]string, len(ranking)),
		Values:   make([]float64, len(ranking)),
		Emphasis: make([]bool, len(ranking)),
	}
	for i, e := range ranking {
		spec.Labels[i] = e.Key
		spec.Values[i] = e.Value
		spec.Emphasis[i] = e.Value == max
	}
	return spec, true
}

// HeatmapSpec : matrice des delays moyens machine × date. nil = pas de
// données pour ce couple, à rendre vide (pas comme un zéro).
type HeatmapSpec struct {
	Machines []string     `json:"machines"`
	Dates    []string     `json:"dates"`
	Mean     [][]*float64 `json:"mean"` // [machine][date]
}

func BuildHeatmapSpec(g PivotGrid) (HeatmapSpec, bool) {
	if g.Empty() {
		return HeatmapSpec{}, false
	}
	spec := HeatmapSpec{Machines: g.Machines, Dates: g.Dates}
	spec.Mean = make([][]*float64, len(g.Machines))
	for i, m := range g.Machines {
		spec.Mean[i] = make([]*float64, len(g.Dates))
		for j, d := range g.Dates {
			if c, ok := g.Cell(m, d); ok {
				v := c.Mean
				spec.Mean[i][j] = &v
			}
		}
	}
	return spec, true
}
