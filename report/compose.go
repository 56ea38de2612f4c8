package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"variance-insight/variance"
)

// ComposeInput regroupe tout ce qui entre dans le rapport final. Les
// champs image sont des PNG bruts, nil quand la section n'a rien à
// montrer.
type ComposeInput struct {
	Title     string
	TopN      int // taille configurée des classements (titres de section)
	Snapshot  variance.Snapshot
	ByReason  []AlertGroup
	ByMachine []AlertGroup

	Logo       []byte
	Gantt      []byte
	ParetoPNG  []byte
	PiePNG     []byte
	HeatmapPNG []byte
}

type reportView struct {
	Title       string
	ReportDate  string
	TopN        int
	K           variance.KPISummary
	Worst       *variance.WorstJobInfo
	WorstDelay  string
	Thresholds  []variance.ThresholdCount
	TopReasons  variance.RankingTable
	TopMachines variance.RankingTable
	HasAlerts   bool
	ByReason    []AlertGroup
	ByMachine   []AlertGroup

	LogoHTML    template.HTML
	GanttHTML   template.HTML
	ParetoHTML  template.HTML
	PieHTML     template.HTML
	HeatmapHTML template.HTML
}

// Compose produit le document HTML complet. Deux appels avec la même
// entrée produisent exactement les mêmes octets, le rendu ne dépend
// d'aucun état externe.
func Compose(in ComposeInput) ([]byte, error) {
	snap := in.Snapshot
	view := reportView{
		Title:       in.Title,
		ReportDate:  snap.ReportDate,
		TopN:        in.TopN,
		K:           snap.Summary,
		Worst:       snap.Worst,
		Thresholds:  descendingThresholds(snap.Thresholds),
		TopReasons:  snap.TopReasons,
		TopMachines: snap.TopMachines,
		HasAlerts:   len(in.ByReason) > 0 || len(in.ByMachine) > 0,
		ByReason:    in.ByReason,
		ByMachine:   in.ByMachine,
		GanttHTML:   inlineImage(in.Gantt, "chart", "Gantt Chart"),
		ParetoHTML:  inlineImage(in.ParetoPNG, "chart", "Pareto Chart"),
		PieHTML:     inlineImage(in.PiePNG, "chart", "Pie Chart"),
		HeatmapHTML: inlineImage(in.HeatmapPNG, "chart", "Heatmap"),
	}
	if view.TopN == 0 {
		view.TopN = 3
	}
	if snap.Worst != nil {
		view.WorstDelay = formatNumber(snap.Worst.DelayMin)
	}
	if len(in.Logo) > 0 {
		view.LogoHTML = inlineImage(in.Logo, "company-logo", "logo")
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("report rendering failed: %w", err)
	}
	return buf.Bytes(), nil
}

// inlineImage encode un PNG en data URI, prêt à être injecté tel quel.
func inlineImage(png []byte, class, alt string) template.HTML {
	if len(png) == 0 {
		return ""
	}
	enc := base64.StdEncoding.EncodeToString(png)
	return template.HTML(fmt.Sprintf(`<img class="%s" src="data:image/png;base64,%s" alt="%s">`, class, enc, alt))
}

// Les seuils sont stockés croissants, le rapport les affiche du plus
// sévère au plus faible.
func descendingThresholds(in []variance.ThresholdCount) []variance.ThresholdCount {
	if len(in) == 0 {
		return nil
	}
	out := make([]variance.ThresholdCount, len(in))
	for i, tc := range in {
		out[len(in)-1-i] = tc
	}
	return out
}

func fmt1(f float64) string {
	return fmt.Sprintf("%.1f", f)
}
