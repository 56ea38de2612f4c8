package worker

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"variance-insight/auth"
	"variance-insight/config"
	"variance-insight/ingest"
	"variance-insight/logging"
	"variance-insight/render"
	"variance-insight/report"
	"variance-insight/utils"
	"variance-insight/variance"
)

// Maps et file d’attente FIFO
var (
	pendingRequests    = sync.Map{} // id => *ReportRequest
	processingRequests = sync.Map{} // id => *ReportResult
	pendingMutex       = &sync.Mutex{}
	pendingOrder       = []string{}
)

// Ajoute une requête dans la file FIFO
func AddPendingRequest(req *ReportRequest) {
	pendingRequests.Store(req.ID, req)
	pendingMutex.Lock()
	pendingOrder = append(pendingOrder, req.ID)
	pendingMutex.Unlock()
}

// Récupère puis supprime la plus ancienne requête FIFO (ou "" si aucune)
func NextPendingID() string {
	pendingMutex.Lock()
	defer pendingMutex.Unlock()
	if len(pendingOrder) == 0 {
		return ""
	}
	nextID := pendingOrder[0]
	pendingOrder = pendingOrder[1:]
	return nextID
}

// Expose les maps pour l’API statut
func PendingRequests() *sync.Map    { return &pendingRequests }
func ProcessingRequests() *sync.Map { return &processingRequests }

// Lance N workers en parallèle
func StartReportWorkers(num int, cfg *auth.Config, schema *config.ReportSchema, reportLogger *logging.Logger) {
	for i := 0; i < num; i++ {
		go reportWorker(cfg, schema, reportLogger)
	}
}

// Un worker traite une requête à la fois, dès qu’il en trouve une dans la file FIFO
func reportWorker(cfg *auth.Config, schema *config.ReportSchema, reportLogger *logging.Logger) {
	for {
		nextID := NextPendingID()
		if nextID == "" {
			time.Sleep(300 * time.Millisecond)
			continue
		}
		v, ok := pendingRequests.LoadAndDelete(nextID)
		if !ok {
			continue
		}
		req := v.(*ReportRequest)
		processingRequests.Store(nextID, &ReportResult{Status: StatusProcessing, Owner: req.Owner})

		reportLogger.Write("[START] id=" + nextID + " owner=" + req.Owner)

		status, snap, htmlPath, xlsPath, errMsg := ProcessRequest(req, cfg, schema, reportLogger)
		processingRequests.Store(nextID, &ReportResult{
			Status:     status,
			Snapshot:   snap,
			HTMLPath:   htmlPath,
			XLSPath:    xlsPath,
			ErrorMsg:   errMsg,
			Owner:      req.Owner,
			FinishedAt: time.Now(),
		})
	}
}

// ProcessRequest déroule le pipeline complet : parse du classeur,
// normalisation, agrégats, graphiques, puis écriture du rapport HTML et
// de l'export pivot. Seul un classeur illisible est fatal, tout le
// reste dégrade en sections vides.
func ProcessRequest(req *ReportRequest, cfg *auth.Config, schema *config.ReportSchema, logger *logging.Logger) (ReportStatus, *variance.Snapshot, string, string, string) {
	raw, err := ingest.ParseXLSX(req.XLSX)
	if err != nil {
		logger.Writef("[FAIL] id=%s parse xlsx: %v", req.ID, err)
		return StatusError, nil, "", "", "Classeur illisible"
	}

	records := variance.Normalize(raw, schema)
	snap := variance.BuildSnapshot(records, schema)
	byReason, byMachine := report.BuildAlertGroups(records, snap)

	in := report.ComposeInput{
		Title:     schema.Branding.Title,
		TopN:      schema.TopN,
		Snapshot:  snap,
		ByReason:  byReason,
		ByMachine: byMachine,
		Logo:      loadLogo(schema, logger),
		Gantt:     req.Gantt,
	}
	// Un graphique qui échoue est logué puis omis du rapport
	if spec, ok := variance.BuildParetoSpec(records); ok {
		if png, err := render.Pareto(spec); err == nil {
			in.ParetoPNG = png
		} else {
			logger.Writef("[WARN] id=%s pareto: %v", req.ID, err)
		}
	}
	if spec, ok := variance.BuildPieSpec(records); ok {
		if png, err := render.Pie(spec); err == nil {
			in.PiePNG = png
		} else {
			logger.Writef("[WARN] id=%s pie: %v", req.ID, err)
		}
	}
	if spec, ok := variance.BuildHeatmapSpec(snap.Pivot); ok {
		if png, err := render.Heatmap(spec); err == nil {
			in.HeatmapPNG = png
		} else {
			logger.Writef("[WARN] id=%s heatmap: %v", req.ID, err)
		}
	}

	html, err := report.Compose(in)
	if err != nil {
		logger.Writef("[FAIL] id=%s compose: %v", req.ID, err)
		return StatusError, &snap, "", "", "Erreur de composition du rapport"
	}

	root := utils.GetProjectRoot()
	htmlDir := filepath.Join(root, cfg.Report.HTMLDir)
	if err := os.MkdirAll(htmlDir, 0755); err != nil {
		logger.Writef("[FAIL] id=%s mkdir %s: %v", req.ID, htmlDir, err)
		return StatusError, &snap, "", "", "Impossible de créer le dossier des rapports"
	}
	htmlPath := filepath.Join(htmlDir, req.ID+".html")
	if err := os.WriteFile(htmlPath, html, 0644); err != nil {
		logger.Writef("[FAIL] id=%s write html: %v", req.ID, err)
		return StatusError, &snap, "", "", "Impossible d'écrire le rapport HTML"
	}

	xlsDir := filepath.Join(root, cfg.Report.XLSDir)
	if err := os.MkdirAll(xlsDir, 0755); err != nil {
		logger.Writef("[FAIL] id=%s mkdir %s: %v", req.ID, xlsDir, err)
		return StatusError, &snap, htmlPath, "", "Impossible de créer le dossier xls"
	}
	xlsPath := filepath.Join(xlsDir, req.ID+".xlsx")
	if err := report.WritePivotXLSX(snap.Pivot, xlsPath); err != nil {
		logger.Writef("[FAIL] id=%s write xlsx: %v", req.ID, err)
		return StatusError, &snap, htmlPath, "", "Impossible d'écrire l'export pivot"
	}

	logger.Writef("[COMPLETE] id=%s jobs=%d html=%s xls=%s", req.ID, snap.Summary.TotalJobs, htmlPath, xlsPath)
	return StatusComplete, &snap, htmlPath, xlsPath, ""
}

func loadLogo(schema *config.ReportSchema, logger *logging.Logger) []byte {
	if schema.Branding.LogoFile == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(utils.GetProjectRoot(), schema.Branding.LogoFile))
	if err != nil {
		logger.Writef("[WARN] logo %s: %v", schema.Branding.LogoFile, err)
		return nil
	}
	return data
}

// StartJanitor purge périodiquement les rapports plus vieux que
// max_file_age_hours : fichiers supprimés, statut passé à expired.
// Sans limite configurée, rien ne tourne.
func StartJanitor(cfg *auth.Config, logger *logging.Logger) {
	if cfg.MaxFileAgeHours <= 0 {
		return
	}
	maxAge := time.Duration(cfg.MaxFileAgeHours) * time.Hour
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			now := time.Now()
			processingRequests.Range(func(key, value interface{}) bool {
				res := value.(*ReportResult)
				if res.Status != StatusComplete && res.Status != StatusError {
					return true
				}
				if now.Sub(res.FinishedAt) < maxAge {
					return true
				}
				for _, p := range []string{res.HTMLPath, res.XLSPath} {
					if p == "" {
						continue
					}
					if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
						logger.Writef("[WARN] janitor remove %s: %v", p, err)
					}
				}
				processingRequests.Store(key, &ReportResult{
					Status:     StatusExpired,
					Owner:      res.Owner,
					FinishedAt: res.FinishedAt,
				})
				logger.Writef("[EXPIRED] id=%v", key)
				return true
			})
		}
	}()
}
