package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tealeg/xlsx/v3"

	"variance-insight/config"
	"variance-insight/variance"
)

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }
func dptr(t time.Time) *time.Time {
	return &t
}

func sampleRecords() variance.RecordSet {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return variance.RecordSet{
		{Date: dptr(d1), Machine: sptr("M1"), ItemCode: sptr("P1"), DelayMin: fptr(50)},
		{Date: dptr(d1), Machine: sptr("M1"), ItemCode: sptr("P2"), DelayMin: fptr(150), Alert: sptr("X"), Reason: sptr("Setup"), Note: sptr("late op")},
		{Date: dptr(d2), Machine: sptr("M2"), ItemCode: sptr("P3"), DelayMin: fptr(-10)},
	}
}

func sampleInput() ComposeInput {
	rs := sampleRecords()
	snap := variance.BuildSnapshot(rs, config.DefaultReportSchema())
	byReason, byMachine := BuildAlertGroups(rs, snap)
	return ComposeInput{
		Title:     "Variance Report",
		TopN:      3,
		Snapshot:  snap,
		ByReason:  byReason,
		ByMachine: byMachine,
		ParetoPNG: []byte{0x89, 'P', 'N', 'G'},
	}
}

func TestComposeDeterministic(t *testing.T) {
	in := sampleInput()
	first, err := Compose(in)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	second, err := Compose(in)
	if err != nil {
		t.Fatalf("Compose failed on second run: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("two renders of the same input differ")
	}
}

func TestComposeContent(t *testing.T) {
	html, err := Compose(sampleInput())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	doc := string(html)
	for _, want := range []string{
		"Variance Report",
		"Report Date: 01/01/2024",
		"33.3%", // alert rate shown at one decimal
		"150 minutes",
		"Delay &gt; 100 min",
		"Setup",
		"data:image/png;base64,",
		"page-break-before: always",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if !strings.Contains(doc, "Pareto Chart") {
		t.Errorf("pareto section missing while a PNG was supplied")
	}
	if strings.Contains(doc, "Pie Chart") {
		t.Errorf("pie section present without a PNG")
	}
	if !strings.Contains(doc, "No Gantt chart supplied") {
		t.Errorf("gantt placeholder missing")
	}
}

func TestComposeEmptyDataset(t *testing.T) {
	snap := variance.BuildSnapshot(nil, config.DefaultReportSchema())
	html, err := Compose(ComposeInput{Title: "Empty", Snapshot: snap})
	if err != nil {
		t.Fatalf("Compose failed on empty dataset: %v", err)
	}
	doc := string(html)
	for _, want := range []string{
		"Report Date: N/A",
		"N/A – no delay data",
		"No reason data",
		"No alerted jobs",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("empty report missing %q", want)
		}
	}
	if strings.Contains(doc, "Heatmap") {
		t.Errorf("heatmap section present without a PNG")
	}
}

func TestBuildAlertGroups(t *testing.T) {
	rs := sampleRecords()
	snap := variance.BuildSnapshot(rs, config.DefaultReportSchema())
	byReason, byMachine := BuildAlertGroups(rs, snap)
	if len(byReason) != 1 || byReason[0].Title != "Setup" || len(byReason[0].Rows) != 1 {
		t.Fatalf("unexpected reason groups: %+v", byReason)
	}
	row := byReason[0].Rows[0]
	if row.Machine != "M1" || row.Delay != "150" || row.Date != "2024-01-01" {
		t.Errorf("unexpected alert row: %+v", row)
	}
	// top machines ranks M1 only (positive delays), its group holds the alerted job
	if len(byMachine) != 1 || byMachine[0].Title != "M1" || len(byMachine[0].Rows) != 1 {
		t.Errorf("unexpected machine groups: %+v", byMachine)
	}
}

func TestWritePivotXLSX(t *testing.T) {
	grid := variance.Pivot(sampleRecords())
	path := filepath.Join(t.TempDir(), "pivot.xlsx")
	if err := WritePivotXLSX(grid, path); err != nil {
		t.Fatalf("WritePivotXLSX failed: %v", err)
	}
	f, err := xlsx.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	sheet := f.Sheets[0]
	cell, err := sheet.Cell(0, 1)
	if err != nil {
		t.Fatalf("cannot read header cell: %v", err)
	}
	if got := cell.String(); got != "2024-01-01 mean" {
		t.Errorf("header = %q, want %q", got, "2024-01-01 mean")
	}
	// first machine row: M1, mean of 50 and 150
	cell, err = sheet.Cell(1, 1)
	if err != nil {
		t.Fatalf("cannot read value cell: %v", err)
	}
	mean, err := cell.Float()
	if err != nil {
		t.Fatalf("mean cell is not numeric: %v", err)
	}
	if mean != 100 {
		t.Errorf("mean = %v, want 100", mean)
	}
}
