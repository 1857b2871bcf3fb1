package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/library-portal/internal/models"
)

func questionPaper(id, subject, course, semester, status string) *models.QuestionPaper {
	opt := func(v string) models.OptionalString {
		if v == "" {
			return models.Absent
		}
		return models.Present(v)
	}
	return &models.QuestionPaper{
		ID:              id,
		AccessionNumber: models.Present("A" + id),
		Subject:         opt(subject),
		Course:          opt(course),
		Semester:        opt(semester),
		Status:          opt(status),
	}
}

func sampleRecords() []models.Resource {
	return []models.Resource{
		questionPaper("1", "Maths", "bcom", "3", "available"),
		questionPaper("2", "mySubject123", "bscit", "1", "in shelf"),
		questionPaper("3", "Accounting", "bcom", "5", "demolished"),
		questionPaper("4", "", "", "", ""),
	}
}

func ids(records []models.Resource) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ResourceID()
	}
	return out
}

func TestApplyFiltersEmptyStateKeepsOrder(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeQuestionPapers)
	records := sampleRecords()

	got := ApplyFilters(records, NewFilterState(schema), schema)

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestApplyFiltersEnumeratedExactMatch(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeQuestionPapers)

	got := ApplyFilters(sampleRecords(), models.FilterState{"course": "bcom"}, schema)
	assert.Equal(t, []string{"1", "3"}, ids(got))

	got = ApplyFilters(sampleRecords(), models.FilterState{"course": "bms"}, schema)
	assert.Empty(t, got)

	// exact, not substring, and case-sensitive
	assert.Empty(t, ApplyFilters(sampleRecords(), models.FilterState{"course": "bco"}, schema))
	assert.Empty(t, ApplyFilters(sampleRecords(), models.FilterState{"course": "BCOM"}, schema))
	assert.Empty(t, ApplyFilters(sampleRecords(), models.FilterState{"status": "shelf"}, schema))
}

func TestApplyFiltersFreeTextIsCaseInsensitiveSubstring(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeQuestionPapers)

	got := ApplyFilters(sampleRecords(), models.FilterState{"subject": "SUBJ"}, schema)

	assert.Equal(t, []string{"2"}, ids(got))
}

func TestApplyFiltersCombinesWithAnd(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeQuestionPapers)

	got := ApplyFilters(sampleRecords(), models.FilterState{"course": "bcom", "subject": "acc"}, schema)

	assert.Equal(t, []string{"3"}, ids(got))
}

func TestApplyFiltersAbsentValuesNeverMatch(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeQuestionPapers)

	for _, filters := range []models.FilterState{
		{"subject": "und"},
		{"year": "2"},
		{"status": "undefined"},
	} {
		for _, r := range ApplyFilters(sampleRecords(), filters, schema) {
			assert.NotEqual(t, "4", r.ResourceID(), "%v", filters)
		}
	}
}

func TestApplyFiltersIgnoresFieldsOutsideSchema(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeQuestionPapers)

	got := ApplyFilters(sampleRecords(), models.FilterState{"title": "nothing matches this"}, schema)

	assert.Len(t, got, 4)
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeQuestionPapers)
	records := sampleRecords()

	_ = ApplyFilters(records, models.FilterState{"course": "bscit"}, schema)

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(records))
}

func TestFilterControls(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeQuestionPapers)

	controls := FilterControls(schema, models.FilterState{"course": "bms"})

	assert.Len(t, controls, len(schema))
	assert.Equal(t, "course", controls[2].Field.Name)
	assert.True(t, controls[2].Select())
	assert.Equal(t, "bms", controls[2].Value)
	assert.False(t, controls[4].Select())
}

func TestFiltersFromQuery(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeResearchPapers)
	values := map[string]string{"author": "knuth", "course": "bcom"}

	state := FiltersFromQuery(schema, func(k string) string { return values[k] })

	assert.Equal(t, "knuth", state["author"])
	_, hasCourse := state["course"]
	assert.False(t, hasCourse)
	assert.Len(t, state, len(schema))
}
