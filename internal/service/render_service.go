package service

import (
	"strings"

	"github.com/noah-isme/library-portal/internal/models"
)

var statusClasses = map[string]models.BadgeClass{
	"available":  models.BadgePositive,
	"in shelf":   models.BadgeCaution,
	"demolished": models.BadgeNegative,
}

// StatusClass maps a status value to its badge styling.
func StatusClass(value models.OptionalString) models.BadgeClass {
	if !value.Valid {
		return models.BadgeNeutral
	}
	if class, ok := statusClasses[value.Value]; ok {
		return class
	}
	return models.BadgeNeutral
}

// RenderField maps one field of a record to its renderable form. The result
// depends only on the record and the field.
func RenderField(record models.Resource, field models.FieldDescriptor) models.RenderSpec {
	value := record.Field(field.Name)

	switch field.Name {
	case "status":
		return models.StatusBadge{Label: field.Label, Value: value, Class: StatusClass(value)}
	case "link":
		if value.Valid && value.Value != "" {
			return models.ExternalLink{Label: field.Label, URL: value.Value}
		}
	}
	return models.PlainText{Label: field.Label, Value: value.OrDefault(models.FallbackText)}
}

// RenderCard renders every schema field of a record, in schema order. The
// same card backs the compact listing entry and the detail view.
func RenderCard(record models.Resource, schema models.ResourceTypeSchema) models.Card {
	fields := make([]models.RenderSpec, 0, len(schema))
	for _, f := range schema {
		fields = append(fields, RenderField(record, f))
	}
	return models.Card{ID: record.ResourceID(), Fields: fields}
}

// RenderCards renders a list of records.
func RenderCards(records []models.Resource, schema models.ResourceTypeSchema) []models.Card {
	cards := make([]models.Card, len(records))
	for i, r := range records {
		cards[i] = RenderCard(r, schema)
	}
	return cards
}

// PageTitle turns a type identifier into a heading: "question-papers" becomes "QUESTION PAPERS".
func PageTitle(resourceType string) string {
	return strings.ToUpper(strings.ReplaceAll(resourceType, "-", " "))
}
