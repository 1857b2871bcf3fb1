package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/noah-isme/library-portal/internal/models"
)

// Resource type identifiers known to the portal.
const (
	TypeQuestionPapers = "question-papers"
	TypeResearchPapers = "research-papers"
)

// Fields with a fixed filter vocabulary. Membership is static and independent of the schema.
var enumeratedFields = map[string][]string{
	"course":   {"bcom", "bscit", "bvoc sd", "bms"},
	"semester": {"1", "2", "3", "4", "5", "6", "7", "8"},
	"status":   {"available", "in shelf", "demolished"},
}

// ResourceFactory returns an empty record of a registered type, ready for decoding.
type ResourceFactory func() models.Resource

type schemaEntry struct {
	fields  models.ResourceTypeSchema
	factory ResourceFactory
}

// SchemaRegistry maps resource type identifiers to their field schema and record shape.
type SchemaRegistry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]schemaEntry
}

// NewSchemaRegistry returns an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{entries: make(map[string]schemaEntry)}
}

// DefaultSchemaRegistry returns the registry populated with the catalog's resource types.
func DefaultSchemaRegistry() *SchemaRegistry {
	r := NewSchemaRegistry()
	r.MustRegister(TypeQuestionPapers, models.ResourceTypeSchema{
		{Name: "accessionNumber", Label: "Accession No"},
		{Name: "year", Label: "Year"},
		{Name: "course", Label: "Course"},
		{Name: "semester", Label: "Semester"},
		{Name: "subject", Label: "Subject"},
		{Name: "status", Label: "Status"},
		{Name: "link", Label: "Link"},
	}, func() models.Resource { return &models.QuestionPaper{} })
	r.MustRegister(TypeResearchPapers, models.ResourceTypeSchema{
		{Name: "accessionNumber", Label: "Accession No"},
		{Name: "title", Label: "Title"},
		{Name: "author", Label: "Author"},
		{Name: "publicationYear", Label: "Year"},
		{Name: "status", Label: "Status"},
		{Name: "link", Label: "PDF Link"},
	}, func() models.Resource { return &models.ResearchPaper{} })
	return r
}

// Register adds a resource type. Every field name must resolve on the record
// shape produced by factory, and names must be unique within the schema.
func (r *SchemaRegistry) Register(resourceType string, fields models.ResourceTypeSchema, factory ResourceFactory) error {
	if resourceType == "" {
		return fmt.Errorf("register schema: empty resource type")
	}
	if factory == nil {
		return fmt.Errorf("register schema %s: nil factory", resourceType)
	}

	shape := factory()
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("register schema %s: empty field name", resourceType)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("register schema %s: duplicate field %q", resourceType, f.Name)
		}
		seen[f.Name] = struct{}{}
		if !shape.HasField(f.Name) {
			return fmt.Errorf("register schema %s: field %q is not defined on %T", resourceType, f.Name, shape)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[resourceType]; exists {
		return fmt.Errorf("register schema %s: already registered", resourceType)
	}
	copied := make(models.ResourceTypeSchema, len(fields))
	copy(copied, fields)
	r.entries[resourceType] = schemaEntry{fields: copied, factory: factory}
	r.order = append(r.order, resourceType)
	return nil
}

// MustRegister is Register that panics; used for static configuration.
func (r *SchemaRegistry) MustRegister(resourceType string, fields models.ResourceTypeSchema, factory ResourceFactory) {
	if err := r.Register(resourceType, fields, factory); err != nil {
		panic(err)
	}
}

// Fields returns the ordered schema of a type. Unknown types yield an empty schema.
func (r *SchemaRegistry) Fields(resourceType string) models.ResourceTypeSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[resourceType]
	if !ok {
		return models.ResourceTypeSchema{}
	}
	out := make(models.ResourceTypeSchema, len(entry.fields))
	copy(out, entry.fields)
	return out
}

// Known reports whether the type is registered.
func (r *SchemaRegistry) Known(resourceType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[resourceType]
	return ok
}

// Types returns registered type identifiers in registration order.
func (r *SchemaRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Decode turns one raw record into the typed shape of its resource type.
// Unregistered types decode into a GenericResource.
func (r *SchemaRegistry) Decode(resourceType string, raw json.RawMessage) (models.Resource, error) {
	var record models.Resource = &models.GenericResource{}
	r.mu.RLock()
	if entry, ok := r.entries[resourceType]; ok {
		record = entry.factory()
	}
	r.mu.RUnlock()

	if err := json.Unmarshal(raw, record); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", resourceType, err)
	}
	return record, nil
}

// Empty returns a blank record of the type, used when an envelope carries no record.
func (r *SchemaRegistry) Empty(resourceType string) models.Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[resourceType]; ok {
		return entry.factory()
	}
	return &models.GenericResource{}
}

// Vocabulary returns the fixed filter options of an enumerated field.
func Vocabulary(field string) ([]string, bool) {
	values, ok := enumeratedFields[field]
	if !ok {
		return nil, false
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, true
}

// IsEnumerated reports whether a field filters by exact match.
func IsEnumerated(field string) bool {
	_, ok := enumeratedFields[field]
	return ok
}
