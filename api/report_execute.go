package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"variance-insight/auth"
	"variance-insight/logging"
	"variance-insight/utils"
	"variance-insight/worker"
)

// ReportExecuteHandler reçoit le classeur summary (multipart, champ
// "summary") plus un éventuel PNG Gantt (champ "gantt") et met la
// requête en file. Répond immédiatement avec l'id à suivre via
// /api/reports/status.
func ReportExecuteHandler(cfg *auth.Config, accessLogger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, isAdmin, err := auth.ExtractUserAndAdminFromJWT(r, cfg.JWT.Secret)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if username == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			accessLogger.Write("EXECUTE_FAIL user=<unauth>")
			return
		}
		if r.Method != "POST" {
			http.Error(w, "Méthode non autorisée", http.StatusMethodNotAllowed)
			return
		}
		maxBytes := cfg.Report.MaxUploadMB << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			http.Error(w, "Formulaire multipart invalide", http.StatusBadRequest)
			accessLogger.Write("EXECUTE_FAIL user=" + username + " bad_multipart")
			return
		}
		file, _, err := r.FormFile("summary")
		if err != nil {
			http.Error(w, "Champ summary manquant", http.StatusBadRequest)
			accessLogger.Write("EXECUTE_FAIL user=" + username + " missing_summary")
			return
		}
		xlsxData, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			http.Error(w, "Lecture du classeur impossible", http.StatusBadRequest)
			accessLogger.Write("EXECUTE_FAIL user=" + username + " read_summary")
			return
		}

		// Gantt optionnel, inséré tel quel dans le rapport
		var ganttData []byte
		if gantt, _, err := r.FormFile("gantt"); err == nil {
			ganttData, err = io.ReadAll(gantt)
			gantt.Close()
			if err != nil {
				http.Error(w, "Lecture du Gantt impossible", http.StatusBadRequest)
				accessLogger.Write("EXECUTE_FAIL user=" + username + " read_gantt")
				return
			}
		}

		id := utils.GenerateRequestID()
		req := &worker.ReportRequest{
			ID:        id,
			XLSX:      xlsxData,
			Gantt:     ganttData,
			Owner:     username,
			Admin:     isAdmin,
			CreatedAt: time.Now(),
		}
		worker.AddPendingRequest(req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": id})
		accessLogger.Write("EXECUTE_OK user=" + username + " id=" + id)
	}
}
