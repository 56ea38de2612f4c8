package variance

import (
	"sort"

	"variance-insight/config"
)

// Snapshot : tous les agrégats d'un RecordSet, calculés une fois par
// upload. La vue interactive (JSON) et le rapport HTML lisent les mêmes
// valeurs, seule la précision d'affichage diffère côté rapport.
type Snapshot struct {
	Summary     KPISummary       `json:"summary"`
	TopReasons  RankingTable     `json:"top_reasons"`
	TopMachines RankingTable     `json:"top_machines"`
	Thresholds  []ThresholdCount `json:"thresholds"`
	Worst       *WorstJobInfo    `json:"worst_job"` // nil si aucun delay renseigné
	Pivot       PivotGrid        `json:"pivot"`
	ReportDate  string           `json:"report_date"` // jj/mm/aaaa, ou N/A
}

func BuildSnapshot(rs RecordSet, schema *config.ReportSchema) Snapshot {
	snap := Snapshot{
		Summary:     Summarize(rs),
		TopReasons:  RankReasons(rs, schema.TopN),
		TopMachines: RankMachinesByDelay(rs, schema.TopN),
		Thresholds:  ThresholdCounts(rs, schema.Thresholds),
		Pivot:       Pivot(rs),
		ReportDate:  reportDate(rs),
	}
	if worst, ok := WorstJob(rs); ok {
		info := WorstJobInfo{DelayMin: *worst.DelayMin, Machine: "N/A", ItemCode: "N/A", Date: "N/A"}
		if worst.Machine != nil {
			info.Machine = *worst.Machine
		}
		if worst.ItemCode != nil {
			info.ItemCode = *worst.ItemCode
		}
		if worst.Date != nil {
			info.Date = worst.Date.Format(DateLayout)
		}
		snap.Worst = &info
	}
	return snap
}

// reportDate : la date la plus fréquente du jeu, la plus ancienne en
// cas d'égalité. "N/A" quand aucune date n'est exploitable.
func reportDate(rs RecordSet) string {
	counts := map[string]int{}
	for _, r := range rs {
		if r.Date != nil {
			counts[r.Date.Format(DateLayout)]++
		}
	}
	if len(counts) == 0 {
		return "N/A"
	}
	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	best := dates[0]
	for _, d := range dates[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	// Présentation jj/mm/aaaa comme le rapport de production
	return best[8:10] + "/" + best[5:7] + "/" + best[0:4]
}
