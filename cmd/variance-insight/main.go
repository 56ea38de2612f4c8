package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"variance-insight/api"
	"variance-insight/auth"
	"variance-insight/config"
	"variance-insight/logging"
	"variance-insight/static"
	"variance-insight/utils"
	"variance-insight/worker"
)

var (
	cfg     *auth.Config
	users   *auth.UsersFile
	schema  *config.ReportSchema
	loggers []*logging.Logger
)

func main() {
	utils.LogToFile("api.log")
	loadEverything()

	worker.StartReportWorkers(cfg.Report.Workers, cfg, schema, loggers[2])
	worker.StartJanitor(cfg, loggers[2])

	api.RegisterHandlers(cfg, users, loggers[0], loggers[1])
	static.RegisterStaticHandler(cfg, loggers[0])

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP)
	go func() {
		for range sigs {
			log.Println("Reloading configs...")
			loadEverything()
		}
	}()

	log.Printf("Server started listening on %s ...", cfg.Server.Listen)
	log.Fatal(api.StartServer(cfg.Server.Listen))
}

func loadEverything() {
	var err error
	cfg, err = auth.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed config.yaml: %v", err)
	}
	if cfg.Auth.UserBackend == "file" {
		users, err = auth.LoadUsers(cfg.Auth.UserFile)
		if err != nil {
			log.Fatalf("Failed users.yaml: %v", err)
		}
	}
	schema, err = config.LoadReportSchema(cfg.Report.SchemaFile)
	if err != nil {
		log.Printf("Failed %s (%v), using defaults", cfg.Report.SchemaFile, err)
		schema = config.DefaultReportSchema()
	}
	os.MkdirAll(cfg.Server.LogDir, 0755)
	loggers = []*logging.Logger{
		logging.NewLoggerOrDie(cfg.Server.LogDir, "access.log"),
		logging.NewLoggerOrDie(cfg.Server.LogDir, "login.log"),
		logging.NewLoggerOrDie(cfg.Server.LogDir, "report.log"),
	}
}
