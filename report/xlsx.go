package report

import (
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"variance-insight/variance"
)

var pivotStats = []string{"mean", "min", "max", "std"}

// WritePivotXLSX exporte la grille pivot en classeur : une ligne par
// machine, quatre colonnes de statistiques par date. Les couples sans
// données restent vides.
func WritePivotXLSX(g variance.PivotGrid, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Pivot")
	if err != nil {
		return fmt.Errorf("unable to create pivot sheet: %w", err)
	}

	header := sheet.AddRow()
	header.AddCell().SetString("Machine")
	for _, d := range g.Dates {
		for _, stat := range pivotStats {
			header.AddCell().SetString(d + " " + stat)
		}
	}

	for _, m := range g.Machines {
		row := sheet.AddRow()
		row.AddCell().SetString(m)
		for _, d := range g.Dates {
			c, ok := g.Cell(m, d)
			if !ok {
				for range pivotStats {
					row.AddCell()
				}
				continue
			}
			row.AddCell().SetFloat(c.Mean)
			row.AddCell().SetFloat(c.Min)
			row.AddCell().SetFloat(c.Max)
			if c.Std != nil {
				row.AddCell().SetFloat(*c.Std)
			} else {
				row.AddCell()
			}
		}
	}

	return f.Save(path)
}
