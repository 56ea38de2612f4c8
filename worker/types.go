package worker

import (
	"time"

	"variance-insight/variance"
)

// Statuts possibles d’une requête
type ReportStatus string

const (
	StatusWaiting    ReportStatus = "waiting"
	StatusProcessing ReportStatus = "processing"
	StatusComplete   ReportStatus = "complete"
	StatusError      ReportStatus = "error"
	StatusExpired    ReportStatus = "expired"
)

// Stockage d’une requête à traiter
type ReportRequest struct {
	ID        string // id unique
	XLSX      []byte // le classeur summary uploadé
	Gantt     []byte // PNG du Gantt, optionnel
	Owner     string // user à l'origine
	Admin     bool   // user admin ?
	CreatedAt time.Time
}

// Résultat traité
type ReportResult struct {
	Status     ReportStatus
	Snapshot   *variance.Snapshot
	HTMLPath   string
	XLSPath    string
	ErrorMsg   string
	Owner      string
	FinishedAt time.Time
}
