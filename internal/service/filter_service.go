package service

import (
	"strings"

	"github.com/noah-isme/library-portal/internal/models"
)

// NewFilterState returns the unconstrained state for a schema: one empty entry per field.
func NewFilterState(schema models.ResourceTypeSchema) models.FilterState {
	state := make(models.FilterState, len(schema))
	for _, f := range schema {
		state[f.Name] = ""
	}
	return state
}

// ApplyFilters returns the records that satisfy every non-empty filter, in
// their original order. Enumerated fields match exactly and case-sensitively;
// every other field matches by case-insensitive substring. Filters on fields
// outside the schema are ignored, and an absent value never satisfies a
// non-empty filter.
func ApplyFilters(records []models.Resource, filters models.FilterState, schema models.ResourceTypeSchema) []models.Resource {
	type predicate struct {
		field string
		want  string
		exact bool
	}

	predicates := make([]predicate, 0, len(filters))
	for _, f := range schema {
		want := filters[f.Name]
		if want == "" {
			continue
		}
		if IsEnumerated(f.Name) {
			predicates = append(predicates, predicate{field: f.Name, want: want, exact: true})
			continue
		}
		predicates = append(predicates, predicate{field: f.Name, want: strings.ToLower(want)})
	}

	out := make([]models.Resource, 0, len(records))
	for _, record := range records {
		matched := true
		for _, p := range predicates {
			value := record.Field(p.field)
			if !value.Valid {
				matched = false
				break
			}
			if p.exact {
				matched = value.Value == p.want
			} else {
				matched = strings.Contains(strings.ToLower(value.Value), p.want)
			}
			if !matched {
				break
			}
		}
		if matched {
			out = append(out, record)
		}
	}
	return out
}

// FilterControls describes the filter inputs for a schema: a select over the
// fixed vocabulary for enumerated fields, free text otherwise.
func FilterControls(schema models.ResourceTypeSchema, filters models.FilterState) []models.FilterControl {
	controls := make([]models.FilterControl, 0, len(schema))
	for _, f := range schema {
		control := models.FilterControl{Field: f, Value: filters[f.Name]}
		if options, ok := Vocabulary(f.Name); ok {
			control.Options = options
		}
		controls = append(controls, control)
	}
	return controls
}

// FiltersFromQuery builds a filter state from request values, keeping only schema fields.
func FiltersFromQuery(schema models.ResourceTypeSchema, get func(string) string) models.FilterState {
	state := NewFilterState(schema)
	for _, f := range schema {
		state[f.Name] = get(f.Name)
	}
	return state
}
