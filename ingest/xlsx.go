package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"variance-insight/variance"
)

// Seule classe d'erreur fatale du pipeline : un classeur illisible ou
// sans ligne d'entête. Tout le reste (cellules vides, valeurs non
// parsables) est dégradé plus loin, jamais fatal.

// ParseXLSX lit la première feuille du classeur : première ligne =
// entêtes, cellules restituées en texte. Les cellules datées sont
// reformatées en "2006-01-02 15:04" pour la coercition aval.
func ParseXLSX(data []byte) (variance.RawTable, error) {
	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return variance.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	if len(wb.Sheets) == 0 {
		return variance.RawTable{}, errors.New("workbook has no sheet")
	}
	sheet := wb.Sheets[0]

	var tbl variance.RawTable
	rowIdx := 0
	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		var cells []string
		cellErr := r.ForEachCell(func(c *xlsx.Cell) error {
			cells = append(cells, cellText(c))
			return nil
		})
		if cellErr != nil {
			return cellErr
		}
		if rowIdx == 0 {
			for _, c := range cells {
				tbl.Headers = append(tbl.Headers, strings.TrimSpace(c))
			}
		} else {
			tbl.Rows = append(tbl.Rows, cells)
		}
		rowIdx++
		return nil
	})
	if err != nil {
		return variance.RawTable{}, fmt.Errorf("read sheet: %w", err)
	}
	if len(tbl.Headers) == 0 {
		return variance.RawTable{}, errors.New("workbook has no header row")
	}
	return tbl, nil
}

func cellText(c *xlsx.Cell) string {
	if c.IsTime() {
		if t, err := c.GetTime(false); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return c.String()
}
