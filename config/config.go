package config

import (
	"os"
	"path/filepath"
	"variance-insight/utils"

	"gopkg.in/yaml.v3"
)

// Noms canoniques des colonnes du fichier summary_plan_vs_actual.xlsx
const (
	ColDate        = "date"
	ColMachine     = "machine"
	ColItemCode    = "item_code"
	ColPlanStart   = "plan_start"
	ColActualStart = "actual_start"
	ColDelayMin    = "delay_min"
	ColAlert       = "alert"
	ColReason      = "reason"
	ColNote        = "note"
)

type ReportSchema struct {
	// Columns : alias d'entête (après trim) -> nom canonique
	Columns     map[string]string `yaml:"columns"`
	TimeLayouts []string          `yaml:"time_layouts"`
	DateLayouts []string          `yaml:"date_layouts"`
	Thresholds  []float64         `yaml:"thresholds"` // dépassements stricts, ordonnés
	TopN        int               `yaml:"top_n"`
	Branding    struct {
		Title    string `yaml:"title"`
		LogoFile string `yaml:"logo_file"`
	} `yaml:"branding"`
}

// entête de référence de chaque colonne canonique, telle qu'attendue
// dans un classeur déjà normalisé
var displayNames = map[string]string{
	ColDate:        "Date",
	ColMachine:     "Machine",
	ColItemCode:    "ItemCode",
	ColPlanStart:   "Plan Start",
	ColActualStart: "Actual Start",
	ColDelayMin:    "Delay (min)",
	ColAlert:       "Alert",
	ColReason:      "Reason",
	ColNote:        "Note",
}

func DisplayName(canon string) string {
	if d, ok := displayNames[canon]; ok {
		return d
	}
	return canon
}

// DefaultColumns couvre les entêtes de production (vietnamien) et les noms déjà canoniques
func DefaultColumns() map[string]string {
	return map[string]string{
		"Ngày":          ColDate,
		"Date":          ColDate,
		"Máy":           ColMachine,
		"Machine":       ColMachine,
		"Mã SP":         ColItemCode,
		"ItemCode":      ColItemCode,
		"Plan Start":    ColPlanStart,
		"Actual Start":  ColActualStart,
		"Trễ thời gian": ColDelayMin,
		"Delay (min)":   ColDelayMin,
		"Cảnh báo":      ColAlert,
		"Alert":         ColAlert,
		"Nguyên nhân":   ColReason,
		"Reason":        ColReason,
		"Ghi chú":       ColNote,
		"Note":          ColNote,
	}
}

func DefaultReportSchema() *ReportSchema {
	s := &ReportSchema{
		Columns:     DefaultColumns(),
		TimeLayouts: []string{"15:04", "2006-01-02 15:04", "15:04:05"},
		DateLayouts: []string{"2006-01-02", "2006-01-02 15:04", "02/01/2006", "2006-01-02T15:04:05Z07:00"},
		Thresholds:  []float64{100, 200},
		TopN:        3,
	}
	s.Branding.Title = "Variance Report – Plan vs Actual"
	return s
}

// LoadReportSchema lit schema.yaml (relatif à la racine projet) et complète
// les champs absents avec les défauts
func LoadReportSchema(file string) (*ReportSchema, error) {
	var s ReportSchema
	root := utils.GetProjectRoot()
	cfgPath := filepath.Join(root, file)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	def := DefaultReportSchema()
	if len(s.Columns) == 0 {
		s.Columns = def.Columns
	}
	if len(s.TimeLayouts) == 0 {
		s.TimeLayouts = def.TimeLayouts
	}
	if len(s.DateLayouts) == 0 {
		s.DateLayouts = def.DateLayouts
	}
	if len(s.Thresholds) == 0 {
		s.Thresholds = def.Thresholds
	}
	if s.TopN <= 0 {
		s.TopN = def.TopN
	}
	if s.Branding.Title == "" {
		s.Branding.Title = def.Branding.Title
	}
	return &s, nil
}
