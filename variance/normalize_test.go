package variance

import (
	"testing"

	"variance-insight/config"
)

func testSchema() *config.ReportSchema {
	return config.DefaultReportSchema()
}

func TestNormalize_SynonymsAndTrim(t *testing.T) {
	raw := RawTable{
		Headers: []string{" Ngày ", "Máy", "Mã SP", "Trễ thời gian", "Cảnh báo", "Nguyên nhân", "Ghi chú"},
		Rows: [][]string{
			{"2024-01-01", "M1", "SP-01", "150", "X", "Setup", "note"},
		},
	}
	rs := Normalize(raw, testSchema())
	if len(rs) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(rs))
	}
	r := rs[0]
	if r.Date == nil || r.Date.Format(DateLayout) != "2024-01-01" {
		t.Errorf("Date not parsed: %+v", r.Date)
	}
	if r.Machine == nil || *r.Machine != "M1" {
		t.Errorf("Machine not mapped: %+v", r.Machine)
	}
	if r.ItemCode == nil || *r.ItemCode != "SP-01" {
		t.Errorf("ItemCode not mapped: %+v", r.ItemCode)
	}
	if r.DelayMin == nil || *r.DelayMin != 150 {
		t.Errorf("Delay not parsed: %+v", r.DelayMin)
	}
	if !r.Alerted() {
		t.Error("Record with alert value should be alerted")
	}
	if r.Reason == nil || *r.Reason != "Setup" {
		t.Errorf("Reason not mapped: %+v", r.Reason)
	}
	if r.Note == nil || *r.Note != "note" {
		t.Errorf("Note not mapped: %+v", r.Note)
	}
}

func TestNormalize_BadDateKeepsRow(t *testing.T) {
	raw := RawTable{
		Headers: []string{"Date", "Machine", "Delay (min)"},
		Rows: [][]string{
			{"not-a-date", "M1", "50"},
		},
	}
	rs := Normalize(raw, testSchema())
	if len(rs) != 1 {
		t.Fatalf("Malformed date must not drop the row, got %d records", len(rs))
	}
	if rs[0].Date != nil {
		t.Error("Malformed date must become absent")
	}
	if rs[0].DelayMin == nil || *rs[0].DelayMin != 50 {
		t.Error("Other fields of the row must survive")
	}
	// And the row stays out of the pivot but in the totals
	if Summarize(rs).TotalJobs != 1 {
		t.Error("Row must count in totalJobs")
	}
	if !Pivot(rs).Empty() {
		t.Error("Row without date must stay out of the pivot")
	}
}

func TestNormalize_TimeOfDay(t *testing.T) {
	raw := RawTable{
		Headers: []string{"Plan Start", "Actual Start"},
		Rows: [][]string{
			{"08:30", "bogus"},
		},
	}
	rs := Normalize(raw, testSchema())
	r := rs[0]
	if r.PlanStart == nil || r.PlanStart.Hour() != 8 || r.PlanStart.Minute() != 30 {
		t.Errorf("Plan start not parsed: %+v", r.PlanStart)
	}
	if r.ActualStart != nil {
		t.Error("Unparseable time must become absent, not an error")
	}
}

func TestNormalize_DuplicateColumns(t *testing.T) {
	// The alias and the canonical header collide; the canonical one wins.
	raw := RawTable{
		Headers: []string{"Trễ thời gian", "Delay (min)"},
		Rows: [][]string{
			{"10", "20"},
		},
	}
	rs := Normalize(raw, testSchema())
	if rs[0].DelayMin == nil || *rs[0].DelayMin != 20 {
		t.Errorf("Expected canonical column value 20, got %+v", rs[0].DelayMin)
	}
}

func TestNormalize_UnmappedColumnsPassThrough(t *testing.T) {
	raw := RawTable{
		Headers: []string{"Machine", "Shift"},
		Rows: [][]string{
			{"M1", "Night"},
		},
	}
	rs := Normalize(raw, testSchema())
	if rs[0].Extra["Shift"] != "Night" {
		t.Errorf("Unmapped column should pass through, got %+v", rs[0].Extra)
	}
}

func TestNormalize_ShortRowsAndEmptyCells(t *testing.T) {
	raw := RawTable{
		Headers: []string{"Machine", "Delay (min)", "Alert"},
		Rows: [][]string{
			{"M1"},          // row shorter than headers
			{"", "30", " "}, // blank machine, whitespace alert
		},
	}
	rs := Normalize(raw, testSchema())
	if len(rs) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(rs))
	}
	if rs[0].DelayMin != nil || rs[0].Alert != nil {
		t.Error("Missing cells must stay absent")
	}
	if rs[1].Machine != nil {
		t.Error("Blank machine cell must stay absent")
	}
	if rs[1].Alerted() {
		t.Error("Whitespace-only alert must not flag the record")
	}
}

func TestNormalize_DecimalComma(t *testing.T) {
	raw := RawTable{
		Headers: []string{"Delay (min)"},
		Rows:    [][]string{{"12,5"}},
	}
	rs := Normalize(raw, testSchema())
	if rs[0].DelayMin == nil || *rs[0].DelayMin != 12.5 {
		t.Errorf("Expected 12.5, got %+v", rs[0].DelayMin)
	}
}
