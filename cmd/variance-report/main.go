package main

import (
	"flag"
	"fmt"
	"os"

	"variance-insight/config"
	"variance-insight/ingest"
	"variance-insight/render"
	"variance-insight/report"
	"variance-insight/variance"
)

// Génération locale d'un rapport, sans serveur ni file d'attente.
func main() {
	xlsxPath := flag.String("xlsx", "", "classeur summary plan vs actual (obligatoire)")
	ganttPath := flag.String("gantt", "", "image PNG du Gantt (optionnel)")
	outPath := flag.String("out", "report.html", "fichier HTML de sortie")
	xlsOut := flag.String("xls-out", "", "export pivot xlsx (optionnel)")
	schemaFile := flag.String("schema", "", "schema.yaml (défauts embarqués sinon)")
	flag.Parse()

	if *xlsxPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	schema := config.DefaultReportSchema()
	if *schemaFile != "" {
		s, err := config.LoadReportSchema(*schemaFile)
		if err != nil {
			fatalf("Erreur lecture %s : %v", *schemaFile, err)
		}
		schema = s
	}

	data, err := os.ReadFile(*xlsxPath)
	if err != nil {
		fatalf("Erreur lecture %s : %v", *xlsxPath, err)
	}
	raw, err := ingest.ParseXLSX(data)
	if err != nil {
		fatalf("Classeur illisible : %v", err)
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
	}
	if *ganttPath != "" {
		in.Gantt, err = os.ReadFile(*ganttPath)
		if err != nil {
			fatalf("Erreur lecture %s : %v", *ganttPath, err)
		}
	}
	if schema.Branding.LogoFile != "" {
		if logo, err := os.ReadFile(schema.Branding.LogoFile); err == nil {
			in.Logo = logo
		}
	}
	if spec, ok := variance.BuildParetoSpec(records); ok {
		if png, err := render.Pareto(spec); err == nil {
			in.ParetoPNG = png
		}
	}
	if spec, ok := variance.BuildPieSpec(records); ok {
		if png, err := render.Pie(spec); err == nil {
			in.PiePNG = png
		}
	}
	if spec, ok := variance.BuildHeatmapSpec(snap.Pivot); ok {
		if png, err := render.Heatmap(spec); err == nil {
			in.HeatmapPNG = png
		}
	}

	html, err := report.Compose(in)
	if err != nil {
		fatalf("Erreur de composition : %v", err)
	}
	if err := os.WriteFile(*outPath, html, 0644); err != nil {
		fatalf("Erreur écriture %s : %v", *outPath, err)
	}
	fmt.Printf("Rapport écrit : %s (%d jobs, %d en alerte)\n", *outPath, snap.Summary.TotalJobs, snap.Summary.AlertedJobs)

	if *xlsOut != "" {
		if err := report.WritePivotXLSX(snap.Pivot, *xlsOut); err != nil {
			fatalf("Erreur export pivot %s : %v", *xlsOut, err)
		}
		fmt.Printf("Export pivot écrit : %s\n", *xlsOut)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
