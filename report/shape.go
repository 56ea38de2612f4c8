package report

import (
	"strconv"

	"variance-insight/variance"
)

// Étape de mise en forme : transforme records et agrégats en arbre de
// sections prêt pour le template, indépendamment du rendu HTML.

type AlertRow struct {
	Date     string
	Machine  string
	ItemCode string
	Delay    string
	Reason   string
	Note     string
}

type AlertGroup struct {
	Title string
	Rows  []AlertRow
}

// BuildAlertGroups produit les deux découpages du sous-ensemble alerté :
// par cause du top N, puis par machine du top N. Un job peut apparaître
// dans les deux vues, c'est voulu (deux navigations indépendantes).
func BuildAlertGroups(rs variance.RecordSet, snap variance.Snapshot) (byReason, byMachine []AlertGroup) {
	var alerted []variance.JobRecord
	for _, r := range rs {
		if r.Alerted() {
			alerted = append(alerted, r)
		}
	}
	for _, e := range snap.TopReasons {
		g := AlertGroup{Title: e.Key}
		for _, r := range alerted {
			if r.Reason != nil && *r.Reason == e.Key {
				g.Rows = append(g.Rows, alertRow(r))
			}
		}
		byReason = append(byReason, g)
	}
	for _, e := range snap.TopMachines {
		g := AlertGroup{Title: e.Key}
		for _, r := range alerted {
			if r.Machine != nil && *r.Machine == e.Key {
				g.Rows = append(g.Rows, alertRow(r))
			}
		}
		byMachine = append(byMachine, g)
	}
	return byReason, byMachine
}

func alertRow(r variance.JobRecord) AlertRow {
	row := AlertRow{}
	if r.Date != nil {
		row.Date = r.Date.Format(variance.DateLayout)
	}
	if r.Machine != nil {
		row.Machine = *r.Machine
	}
	if r.ItemCode != nil {
		row.ItemCode = *r.ItemCode
	}
	if r.DelayMin != nil {
		row.Delay = formatNumber(*r.DelayMin)
	}
	if r.Reason != nil {
		row.Reason = *r.Reason
	}
	if r.Note != nil {
		row.Note = *r.Note
	}
	return row
}

// formatNumber : sans zéros traînants ("150", "12.5")
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
