package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/library-portal/internal/models"
)

func TestStatusClass(t *testing.T) {
	cases := map[string]models.BadgeClass{
		"available":  models.BadgePositive,
		"in shelf":   models.BadgeCaution,
		"demolished": models.BadgeNegative,
		"Available":  models.BadgeNeutral,
		"lost":       models.BadgeNeutral,
		"":           models.BadgeNeutral,
	}
	for value, want := range cases {
		assert.Equal(t, want, StatusClass(models.Present(value)), value)
	}
	assert.Equal(t, models.BadgeNeutral, StatusClass(models.Absent))
}

func TestRenderFieldVariants(t *testing.T) {
	record := &models.ResearchPaper{
		ID:     "7",
		Title:  models.Present("Sorting"),
		Status: models.Present("in shelf"),
		Link:   models.Present("https://example.edu/7.pdf"),
	}

	status := RenderField(record, models.FieldDescriptor{Name: "status", Label: "Status"})
	assert.Equal(t, models.StatusBadge{Label: "Status", Value: models.Present("in shelf"), Class: models.BadgeCaution}, status)

	link := RenderField(record, models.FieldDescriptor{Name: "link", Label: "PDF Link"})
	assert.Equal(t, models.ExternalLink{Label: "PDF Link", URL: "https://example.edu/7.pdf"}, link)

	title := RenderField(record, models.FieldDescriptor{Name: "title", Label: "Title"})
	assert.Equal(t, models.PlainText{Label: "Title", Value: "Sorting"}, title)

	author := RenderField(record, models.FieldDescriptor{Name: "author", Label: "Author"})
	assert.Equal(t, models.PlainText{Label: "Author", Value: "N/A"}, author)
}

func TestRenderFieldMissingLinkIsPlainText(t *testing.T) {
	for _, link := range []models.OptionalString{models.Absent, models.Present("")} {
		record := &models.QuestionPaper{ID: "1", Link: link}

		spec := RenderField(record, models.FieldDescriptor{Name: "link", Label: "Link"})

		assert.Equal(t, models.PlainText{Label: "Link", Value: "N/A"}, spec)
	}
}

func TestRenderFieldIsDeterministic(t *testing.T) {
	record := questionPaper("1", "Maths", "bcom", "3", "available")
	for _, field := range DefaultSchemaRegistry().Fields(TypeQuestionPapers) {
		assert.Equal(t, RenderField(record, field), RenderField(record, field), field.Name)
	}
}

func TestRenderCardUnknownTypeHasNoFields(t *testing.T) {
	record := &models.GenericResource{ID: "w1", Values: map[string]models.OptionalString{"colour": models.Present("red")}}

	card := RenderCard(record, DefaultSchemaRegistry().Fields("widgets"))

	assert.Equal(t, "w1", card.ID)
	assert.Empty(t, card.Fields)
}

func TestCardWire(t *testing.T) {
	card := RenderCard(questionPaper("1", "Maths", "bcom", "3", "available"), DefaultSchemaRegistry().Fields(TypeQuestionPapers))

	view := card.Wire()

	assert.Equal(t, "1", view.ID)
	assert.Len(t, view.Fields, 7)
	assert.Equal(t, models.RenderStatusBadge, view.Fields[5].Kind)
	assert.Equal(t, models.BadgePositive, view.Fields[5].Class)
	assert.Equal(t, "N/A", view.Fields[6].Value)
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "QUESTION PAPERS", PageTitle("question-papers"))
	assert.Equal(t, "WIDGETS", PageTitle("widgets"))
}
