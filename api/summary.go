package api

import (
	"encoding/json"
	"net/http"

	"variance-insight/auth"
	"variance-insight/worker"
)

// ReportSummaryHandler renvoie le snapshot JSON d'un rapport terminé :
// KPIs, classements, seuils, pire job et grille pivot. Réservé au
// propriétaire du rapport ou à un admin.
func ReportSummaryHandler(cfg *auth.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, isAdmin, err := auth.ExtractUserAndAdminFromJWT(r, cfg.JWT.Secret)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Missing id", http.StatusBadRequest)
			return
		}
		val, ok := worker.ProcessingRequests().Load(id)
		if !ok {
			http.Error(w, "Rapport inconnu", http.StatusNotFound)
			return
		}
		rr := val.(*worker.ReportResult)
		if rr.Owner != username && !isAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if rr.Status != worker.StatusComplete || rr.Snapshot == nil {
			http.Error(w, "Rapport non disponible", http.StatusConflict)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rr.Snapshot)
	}
}
