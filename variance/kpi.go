package variance

import (
	"math"
	"sort"
)

// Summarize calcule les KPI globaux. Jamais d'erreur : les divisions
// dégénérées donnent un taux de 0.
func Summarize(rs RecordSet) KPISummary {
	var k KPISummary
	k.TotalJobs = len(rs)
	machines := map[string]bool{}
	alertedMachines := map[string]bool{}
	for _, r := range rs {
		if r.Alerted() {
			k.AlertedJobs++
		}
		if r.Machine != nil {
			machines[*r.Machine] = true
			if r.Alerted() {
				alertedMachines[*r.Machine] = true
			}
		}
	}
	k.TotalMachines = len(machines)
	k.AlertedMachines = len(alertedMachines)
	if k.TotalJobs > 0 {
		k.AlertRate = round2(float64(k.AlertedJobs) / float64(k.TotalJobs) * 100)
	}
	if k.TotalMachines > 0 {
		k.MachineAlertRate = round2(float64(k.AlertedMachines) / float64(k.TotalMachines) * 100)
	}
	return k
}

// RankReasons : fréquence par cause, décroissant, top n
func RankReasons(rs RecordSet, n int) RankingTable {
	counts := map[string]float64{}
	var order []string
	for _, r := range rs {
		if r.Reason == nil {
			continue
		}
		if _, ok := counts[*r.Reason]; !ok {
			order = append(order, *r.Reason)
		}
		counts[*r.Reason]++
	}
	return rank(order, counts, n)
}

// RankMachinesByDelay : somme des retards strictement positifs par
// machine, décroissant, top n. Les avances (delay négatif) ne comptent pas.
func RankMachinesByDelay(rs RecordSet, n int) RankingTable {
	sums := map[string]float64{}
	var order []string
	for _, r := range rs {
		if r.Machine == nil || r.DelayMin == nil || *r.DelayMin <= 0 {
			continue
		}
		if _, ok := sums[*r.Machine]; !ok {
			order = append(order, *r.Machine)
		}
		sums[*r.Machine] += *r.DelayMin
	}
	return rank(order, sums, n)
}

// rank trie par valeur décroissante, égalités dans l'ordre de première
// apparition, et tronque à n (n <= 0 : pas de troncature)
func rank(order []string, values map[string]float64, n int) RankingTable {
	table := make(RankingTable, 0, len(order))
	for _, key := range order {
		table = append(table, RankEntry{Key: key, Value: values[key]})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Value > table[j].Value
	})
	if n > 0 && len(table) > n {
		table = table[:n]
	}
	return table
}

// ThresholdCounts : pour chaque seuil, nombre de records dont le delay
// dépasse strictement le seuil
func ThresholdCounts(rs RecordSet, thresholds []float64) []ThresholdCount {
	out := make([]ThresholdCount, len(thresholds))
	for i, th := range thresholds {
		out[i].Threshold = th
	}
	for _, r := range rs {
		if r.DelayMin == nil {
			continue
		}
		for i, th := range thresholds {
			if *r.DelayMin > th {
				out[i].Count++
			}
		}
	}
	return out
}

// WorstJob : le record au delay maximum. ok=false si aucun record ne
// porte de delay (le composer affichera N/A, jamais une erreur).
func WorstJob(rs RecordSet) (JobRecord, bool) {
	best := -1
	max := math.Inf(-1)
	for i, r := range rs {
		if r.DelayMin != nil && *r.DelayMin > max {
			max = *r.DelayMin
			best = i
		}
	}
	if best < 0 {
		return JobRecord{}, false
	}
	return rs[best], true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
