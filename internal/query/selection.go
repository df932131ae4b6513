// ABOUTME: Resolves persisted selection state into a valid Selection
// ABOUTME: Unknown or stale values fall back to National or the first sorted value
package query

import (
	"strings"

	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/models"
)

// GeographyColumn returns the column whose distinct values populate the
// geography choices for kind. National has no choices.
func GeographyColumn(kind models.GeographyKind) (dataset.Column, bool) {
	switch kind {
	case models.State:
		return dataset.ColState, true
	case models.Metropolitan:
		return dataset.ColArea, true
	}
	return "", false
}

// GeographyOptions lists the selectable geography values for kind
func GeographyOptions(t *dataset.Table, kind models.GeographyKind) []string {
	col, ok := GeographyColumn(kind)
	if !ok {
		return []string{models.NationalGeography}
	}
	return t.DistinctValues(col)
}

// Occupations lists the selectable occupation titles
func Occupations(t *dataset.Table) []string {
	return t.DistinctValues(dataset.ColOccupation)
}

// IndexOf returns the position of v in values, or 0 when absent
func IndexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return 0
}

// MatchValues keeps the values containing substr (case-insensitive), up to
// limit values. A zero limit keeps every match.
func MatchValues(values []string, substr string, limit int) []string {
	needle := strings.ToLower(substr)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if needle != "" && !strings.Contains(strings.ToLower(v), needle) {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// ResolveSelection turns persisted key/value state (geo_level, selected_geo,
// selected_job) into a Selection whose every field is a valid choice. Values
// are only used when they are members of the matching distinct-value set.
func ResolveSelection(t *dataset.Table, state map[string]string) models.Selection {
	kind := models.GeographyKind(state[models.ParamGeoLevel])
	if !kind.Valid() {
		kind = models.National
	}

	sel := models.Selection{Kind: kind}

	if col, ok := GeographyColumn(kind); ok {
		sel.Geography = pick(t, col, state[models.ParamSelectedGeo])
	} else {
		sel.Geography = models.NationalGeography
	}
	sel.Occupation = pick(t, dataset.ColOccupation, state[models.ParamSelectedJob])

	return sel
}

func pick(t *dataset.Table, col dataset.Column, want string) string {
	if want != "" && t.Contains(col, want) {
		return want
	}
	values := t.DistinctValues(col)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
