package variance

import "time"

// RawTable : table brute issue du classeur uploadé. Cellule vide = "".
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// JobRecord : une ligne du fichier plan vs réel. Chaque champ peut être
// absent (nil), un delay nul reste distinct d'un delay absent.
type JobRecord struct {
	Date        *time.Time
	Machine     *string
	ItemCode    *string
	PlanStart   *time.Time
	ActualStart *time.Time
	DelayMin    *float64
	Alert       *string
	Reason      *string
	Note        *string
	// Extra : colonnes non mappées, conservées telles quelles
	Extra map[string]string
}

// Alerted : présence d'une valeur non vide dans la colonne alerte
func (r JobRecord) Alerted() bool {
	return r.Alert != nil && *r.Alert != ""
}

// RecordSet : ordre d'insertion = ordre des lignes source
type RecordSet []JobRecord

type KPISummary struct {
	TotalJobs        int     `json:"total_jobs"`
	AlertedJobs      int     `json:"alerted_jobs"`
	AlertRate        float64 `json:"alert_rate"` // %, arrondi à 2 décimales
	TotalMachines    int     `json:"total_machines"`
	AlertedMachines  int     `json:"alerted_machines"`
	MachineAlertRate float64 `json:"machine_alert_rate"`
}

type RankEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// RankingTable : tri décroissant, égalités stables (ordre de première
// apparition), tronquée à n entrées
type RankingTable []RankEntry

type ThresholdCount struct {
	Threshold float64 `json:"threshold"`
	Count     int     `json:"count"` // records avec delay strictement supérieur
}

type WorstJobInfo struct {
	DelayMin float64 `json:"delay_min"`
	Machine  string  `json:"machine"`
	ItemCode string  `json:"item_code"`
	Date     string  `json:"date"`
}
