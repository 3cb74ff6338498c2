package importer

import (
	"strings"

	"github.com/rotisserie/eris"
)

// aliases maps normalized sheet headers to canonical column names.
var aliases = map[string]string{
	"question":         "question_text",
	"text":             "question_text",
	"home":             "home_team",
	"away":             "away_team",
	"points":           "possible_points",
	"result":           "actual_result",
	"actual":           "actual_result",
	"stage":            "stage_order",
	"table":            "table_id",
	"participant":      "participant_name",
	"name":             "participant_name",
	"question_id_ref":  "question_ref",
	"prediction":       "text_prediction",
	"answer":           "text_prediction",
	"created":          "created_date",
	"created_at":       "created_date",
	"timestamp":        "created_date",
	"validation":       "validation_list",
	"options":          "validation_list",
	"question_ordinal": "question_id",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_", ".", "_").Replace(h)
	if canon, ok := aliases[h]; ok {
		return canon
	}
	return h
}

// columns indexes a header row by canonical column name. The first
// occurrence of a repeated column wins.
type columns map[string]int

func indexHeader(header []string, required ...string) (columns, error) {
	return indexHeaderWith(header, nil, required...)
}

// indexHeaderWith is indexHeader with fallbacks: fallback[a] = b makes column
// b stand in for a when the sheet has no a.
func indexHeaderWith(header []string, fallback map[string]string, required ...string) (columns, error) {
	cols := make(columns, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if _, seen := cols[name]; !seen && name != "" {
			cols[name] = i
		}
	}
	for want, alt := range fallback {
		if _, ok := cols[want]; !ok {
			if i, ok := cols[alt]; ok {
				cols[want] = i
			}
		}
	}
	var missing []string
	for _, r := range required {
		if _, ok := cols[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("importer: missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
