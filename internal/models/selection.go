// ABOUTME: Selection is the user's occupation and geography choice
// ABOUTME: Shared by every presentation adapter and by persisted URL state
package models

import "fmt"

// Persisted selection keys, matching the dashboard's URL query parameters
const (
	ParamGeoLevel    = "geo_level"
	ParamSelectedGeo = "selected_geo"
	ParamSelectedJob = "selected_job"
)

// Selection is one occupation plus a geography scope
type Selection struct {
	Occupation string        `json:"occupation"`
	Kind       GeographyKind `json:"geo_level"`
	Geography  string        `json:"geography"`
}

// Title returns the heading shown above a result
func (s Selection) Title() string {
	if s.Kind == National {
		return fmt.Sprintf("%s in the United States", s.Occupation)
	}
	return fmt.Sprintf("%s in %s", s.Occupation, s.Geography)
}

// Values returns the selection as a persisted key/value map
func (s Selection) Values() map[string]string {
	return map[string]string{
		ParamGeoLevel:    string(s.Kind),
		ParamSelectedGeo: s.Geography,
		ParamSelectedJob: s.Occupation,
	}
}
