package api

import (
	"net/http"

	"variance-insight/auth"
	"variance-insight/logging"
	"variance-insight/utils"
)

func RegisterHandlers(cfg *auth.Config, users *auth.UsersFile, accessLogger, loginLogger *logging.Logger) {
	utils.LogToFile("api.log")
	http.HandleFunc("/api/login", LoginHandler(cfg, users, loginLogger))
	http.HandleFunc("/api/reports/execute", ReportExecuteHandler(cfg, accessLogger))
	http.HandleFunc("/api/reports/status", ReportStatusHandler(cfg))
	http.HandleFunc("/api/reports/summary", ReportSummaryHandler(cfg))
	http.HandleFunc("/api/reports/download", DownloadReportHandler(cfg, accessLogger))
}

func StartServer(listenAddr string) error {
	return http.ListenAndServe(listenAddr, nil)
}
