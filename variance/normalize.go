package variance

import (
	"strconv"
	"strings"
	"time"

	"variance-insight/config"
)

// Normalize transforme la table brute en RecordSet : trim des entêtes,
// mapping synonymes -> noms canoniques, coercition des types. Une
// cellule non parsable devient absente, la ligne est conservée.
func Normalize(raw RawTable, schema *config.ReportSchema) RecordSet {
	canonical := resolveColumns(raw.Headers, schema.Columns)
	rs := make(RecordSet, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		rec := JobRecord{}
		for i := range raw.Headers {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			if cell == "" {
				continue
			}
			switch canonical[i] {
			case config.ColDate:
				if t, ok := parseAny(cell, schema.DateLayouts); ok {
					d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
					rec.Date = &d
				}
			case config.ColMachine:
				rec.Machine = strPtr(cell)
			case config.ColItemCode:
				rec.ItemCode = strPtr(cell)
			case config.ColPlanStart:
				if t, ok := parseAny(cell, schema.TimeLayouts); ok {
					rec.PlanStart = &t
				}
			case config.ColActualStart:
				if t, ok := parseAny(cell, schema.TimeLayouts); ok {
					rec.ActualStart = &t
				}
			case config.ColDelayMin:
				if f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64); err == nil {
					rec.DelayMin = &f
				}
			case config.ColAlert:
				rec.Alert = strPtr(cell)
			case config.ColReason:
				rec.Reason = strPtr(cell)
			case config.ColNote:
				rec.Note = strPtr(cell)
			case "":
				// colonne dupliquée éliminée
			default:
				if rec.Extra == nil {
					rec.Extra = map[string]string{}
				}
				rec.Extra[canonical[i]] = cell
			}
		}
		rs = append(rs, rec)
	}
	return rs
}

// resolveColumns donne, pour chaque colonne source, son nom canonique,
// le nom trimé d'origine si non mappé, ou "" si doublon à ignorer.
// En cas de collision sur un même canonique, la colonne dont l'entête
// porte déjà le nom de référence gagne, sinon la première rencontrée.
func resolveColumns(headers []string, synonyms map[string]string) []string {
	out := make([]string, len(headers))
	chosen := map[string]int{}
	for i, h := range headers {
		name := strings.TrimSpace(h)
		canon, mapped := synonyms[name]
		if mapped {
			out[i] = canon
		} else {
			out[i] = name
		}
		prev, dup := chosen[out[i]]
		if !dup {
			chosen[out[i]] = i
			continue
		}
		// Doublon : garde l'entête de référence
		ref := config.DisplayName(out[i])
		if strings.TrimSpace(headers[prev]) != ref && name == ref {
			out[prev] = ""
			chosen[out[i]] = i
		} else {
			out[i] = ""
		}
	}
	return out
}

func parseAny(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func strPtr(s string) *string { return &s }
