package variance

import (
	"math"
	"testing"
)

func TestPivot(t *testing.T) {
	g := Pivot(makeRecords())

	c, ok := g.Cell("M1", "2024-01-01")
	if !ok {
		t.Fatal("Expected a cell for (M1, 2024-01-01)")
	}
	if c.Mean != 100 {
		t.Errorf("Mean: got %v, want 100", c.Mean)
	}
	if c.Min != 50 || c.Max != 150 {
		t.Errorf("Min/Max: got %v/%v, want 50/150", c.Min, c.Max)
	}
	if c.Std == nil {
		t.Fatal("Expected a sample std for a group of 2")
	}
	// Sample std of {50, 150} is sqrt(5000) = 70.7106...
	if math.Abs(*c.Std-70.7106781) > 1e-6 {
		t.Errorf("Std: got %v, want 70.7106781", *c.Std)
	}

	c, ok = g.Cell("M2", "2024-01-02")
	if !ok {
		t.Fatal("Expected a cell for (M2, 2024-01-02)")
	}
	if c.Mean != -10 {
		t.Errorf("Mean: got %v, want -10", c.Mean)
	}
	if c.Std != nil {
		t.Errorf("Single-sample std must be undefined, got %v", *c.Std)
	}
}

func TestPivot_NoSyntheticCells(t *testing.T) {
	g := Pivot(makeRecords())
	if _, ok := g.Cell("M1", "2024-01-02"); ok {
		t.Error("No record for (M1, 2024-01-02), cell must be absent")
	}
	if _, ok := g.Cell("M2", "2024-01-01"); ok {
		t.Error("No record for (M2, 2024-01-01), cell must be absent")
	}
}

func TestPivot_Ordering(t *testing.T) {
	rs := RecordSet{
		{Machine: sptr("M9"), Date: dptr("2024-02-01"), DelayMin: fptr(1)},
		{Machine: sptr("M1"), Date: dptr("2024-01-15"), DelayMin: fptr(2)},
		{Machine: sptr("M5"), Date: dptr("2024-01-02"), DelayMin: fptr(3)},
	}
	g := Pivot(rs)
	wantM := []string{"M1", "M5", "M9"}
	wantD := []string{"2024-01-02", "2024-01-15", "2024-02-01"}
	for i, m := range wantM {
		if g.Machines[i] != m {
			t.Errorf("Machines[%d]: got %s, want %s", i, g.Machines[i], m)
		}
	}
	for i, d := range wantD {
		if g.Dates[i] != d {
			t.Errorf("Dates[%d]: got %s, want %s", i, g.Dates[i], d)
		}
	}
}

func TestPivot_ExcludesIncompleteKeys(t *testing.T) {
	rs := RecordSet{
		{Machine: sptr("M1"), DelayMin: fptr(10)},                       // no date
		{Date: dptr("2024-01-01"), DelayMin: fptr(10)},                  // no machine
		{Machine: sptr("M1"), Date: dptr("2024-01-01")},                 // no delay
		{Machine: sptr("M2"), Date: dptr("2024-01-01"), DelayMin: fptr(5)},
	}
	g := Pivot(rs)
	if len(g.Cells) != 1 {
		t.Fatalf("Expected exactly 1 cell, got %d", len(g.Cells))
	}
	if _, ok := g.Cell("M2", "2024-01-01"); !ok {
		t.Error("Expected the complete record to produce its cell")
	}
}

func TestPivot_EmptySet(t *testing.T) {
	g := Pivot(RecordSet{})
	if !g.Empty() {
		t.Error("Expected an empty grid")
	}
	if len(g.Machines) != 0 || len(g.Dates) != 0 {
		t.Errorf("Empty grid must have no axes, got %v / %v", g.Machines, g.Dates)
	}
}
