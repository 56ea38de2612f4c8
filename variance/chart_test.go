package variance

import (
	"math"
	"testing"
)

func TestBuildParetoSpec(t *testing.T) {
	rs := RecordSet{
		{Reason: sptr("Setup")}, {Reason: sptr("Setup")}, {Reason: sptr("Setup")},
		{Reason: sptr("Material")}, {Reason: sptr("Material")},
		{Reason: sptr("Operator")},
		{}, // no reason, ignored
	}
	spec, ok := BuildParetoSpec(rs)
	if !ok {
		t.Fatal("Expected a pareto spec")
	}
	if len(spec.Labels) != 3 {
		t.Fatalf("Expected full (untruncated) distribution of 3, got %d", len(spec.Labels))
	}
	if spec.Labels[0] != "Setup" || spec.Counts[0] != 3 {
		t.Errorf("First bar should be Setup/3, got %s/%v", spec.Labels[0], spec.Counts[0])
	}
	// Cumulative is monotone and ends at 100
	prev := 0.0
	for i, c := range spec.Cumulative {
		if c < prev {
			t.Errorf("Cumulative not monotone at %d: %v < %v", i, c, prev)
		}
		prev = c
	}
	if math.Abs(spec.Cumulative[len(spec.Cumulative)-1]-100) > 1e-9 {
		t.Errorf("Cumulative must end at 100, got %v", spec.Cumulative[len(spec.Cumulative)-1])
	}
	if math.Abs(spec.Cumulative[0]-50) > 1e-9 {
		t.Errorf("First cumulative should be 50%%, got %v", spec.Cumulative[0])
	}
}

func TestBuildParetoSpec_NoReasons(t *testing.T) {
	if _, ok := BuildParetoSpec(RecordSet{{}, {}}); ok {
		t.Error("Expected ok=false without any reason data")
	}
}

func TestBuildPieSpec_EmphasisOnMax(t *testing.T) {
	rs := RecordSet{
		{Reason: sptr("A")}, {Reason: sptr("A")},
		{Reason: sptr("B")},
	}
	spec, ok := BuildPieSpec(rs)
	if !ok {
		t.Fatal("Expected a pie spec")
	}
	if !spec.Emphasis[0] || spec.Emphasis[1] {
		t.Errorf("Only the max slice should be emphasized, got %v", spec.Emphasis)
	}
}

func TestBuildPieSpec_AllTiedSlicesEmphasized(t *testing.T) {
	rs := RecordSet{
		{Reason: sptr("A")}, {Reason: sptr("B")},
	}
	spec, _ := BuildPieSpec(rs)
	if !spec.Emphasis[0] || !spec.Emphasis[1] {
		t.Errorf("All slices tied for max must be emphasized, got %v", spec.Emphasis)
	}
}

func TestBuildHeatmapSpec(t *testing.T) {
	g := Pivot(makeRecords())
	spec, ok := BuildHeatmapSpec(g)
	if !ok {
		t.Fatal("Expected a heatmap spec")
	}
	if len(spec.Mean) != 2 || len(spec.Mean[0]) != 2 {
		t.Fatalf("Expected a 2x2 matrix, got %dx%d", len(spec.Mean), len(spec.Mean[0]))
	}
	// M1 row: mean 100 on 2024-01-01, blank on 2024-01-02
	if spec.Mean[0][0] == nil || *spec.Mean[0][0] != 100 {
		t.Errorf("Expected mean 100 at (M1, 2024-01-01), got %v", spec.Mean[0][0])
	}
	if spec.Mean[0][1] != nil {
		t.Error("Cell without data must be nil, not zero")
	}
	if spec.Mean[1][1] == nil || *spec.Mean[1][1] != -10 {
		t.Errorf("Expected mean -10 at (M2, 2024-01-02), got %v", spec.Mean[1][1])
	}
}

func TestBuildHeatmapSpec_Empty(t *testing.T) {
	if _, ok := BuildHeatmapSpec(Pivot(RecordSet{})); ok {
		t.Error("Expected ok=false for an empty grid")
	}
}

func TestBuildSnapshot_ReportDate(t *testing.T) {
	rs := RecordSet{
		{Date: dptr("2024-01-02")},
		{Date: dptr("2024-01-02")},
		{Date: dptr("2024-01-05")},
	}
	snap := BuildSnapshot(rs, testSchema())
	if snap.ReportDate != "02/01/2024" {
		t.Errorf("Expected 02/01/2024, got %s", snap.ReportDate)
	}
	if snap.Worst != nil {
		t.Error("No delays: worst job must be nil")
	}
}

func TestBuildSnapshot_ReportDateTieTakesEarliest(t *testing.T) {
	rs := RecordSet{
		{Date: dptr("2024-01-05")},
		{Date: dptr("2024-01-02")},
	}
	snap := BuildSnapshot(rs, testSchema())
	if snap.ReportDate != "02/01/2024" {
		t.Errorf("Tie must resolve to the earliest date, got %s", snap.ReportDate)
	}
}

func TestBuildSnapshot_NoDates(t *testing.T) {
	snap := BuildSnapshot(RecordSet{{Machine: sptr("M1")}}, testSchema())
	if snap.ReportDate != "N/A" {
		t.Errorf("Expected N/A, got %s", snap.ReportDate)
	}
}
