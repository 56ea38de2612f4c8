package api

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"variance-insight/auth"
	"variance-insight/logging"
	"variance-insight/worker"
)

// DownloadReportHandler télécharge le rapport HTML ou l'export pivot
// Excel (nécessite JWT valide, propriétaire ou admin)
// Paramètres GET: id (obligatoire), type=html|excel (optionnel, défaut: html)
func DownloadReportHandler(cfg *auth.Config, accessLogger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, isAdmin, err := auth.ExtractUserAndAdminFromJWT(r, cfg.JWT.Secret)
		if err != nil {
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		reportID := r.URL.Query().Get("id")
		if reportID == "" {
			http.Error(w, "Paramètre id manquant", http.StatusBadRequest)
			return
		}

		val, ok := worker.ProcessingRequests().Load(reportID)
		if !ok {
			http.Error(w, "Rapport inconnu", http.StatusNotFound)
			return
		}
		rr := val.(*worker.ReportResult)
		if rr.Owner != username && !isAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		fileType := r.URL.Query().Get("type")
		if fileType == "" {
			fileType = "html"
		}

		var filePath, contentType, fileName string
		safeID := strings.ReplaceAll(reportID, "\"", "")
		switch strings.ToLower(fileType) {
		case "excel", "xlsx":
			filePath = rr.XLSPath
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			fileName = fmt.Sprintf("pivot_%s.xlsx", safeID)
		default:
			filePath = rr.HTMLPath
			contentType = "text/html; charset=utf-8"
			fileName = fmt.Sprintf("report_%s.html", safeID)
		}

		if filePath == "" {
			http.Error(w, "Fichier non trouvé pour ce rapport", http.StatusNotFound)
			return
		}
		if _, err := os.Stat(filePath); err != nil {
			http.Error(w, "Fichier non trouvé pour ce rapport", http.StatusNotFound)
			return
		}

		accessLogger.Write(fmt.Sprintf("[DOWNLOAD] user=%s id=%s type=%s path=%s", username, reportID, fileType, filePath))

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
		http.ServeFile(w, r, filePath)
	}
}
