package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// OptionalString is a catalog field value that may be absent. The backend
// stores every attribute loosely; numbers and booleans are kept in their
// textual form so that filtering and rendering treat them uniformly.
type OptionalString struct {
	Value string
	Valid bool
}

// Present returns a valid OptionalString.
func Present(value string) OptionalString {
	return OptionalString{Value: value, Valid: true}
}

// Absent is the explicit marker for a missing value.
var Absent = OptionalString{}

// OrDefault returns the value, or fallback when the value is absent or empty.
func (o OptionalString) OrDefault(fallback string) string {
	if !o.Valid || o.Value == "" {
		return fallback
	}
	return o.Value
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = Absent
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*o = Present(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*o = Present(strconv.FormatBool(b))
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			// objects and arrays keep their raw JSON text
			*o = Present(string(trimmed))
			return nil
		}
		*o = Present(n.String())
	}
	return nil
}

// MarshalJSON writes absent values as null.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Resource is one catalogued item as returned by the backend. Each resource
// type has its own shape; Field resolves a schema field name against it.
type Resource interface {
	ResourceID() string
	Field(name string) OptionalString
	HasField(name string) bool
}

// QuestionPaper is a record of the "question-papers" type.
type QuestionPaper struct {
	ID              string         `json:"_id"`
	AccessionNumber OptionalString `json:"accessionNumber"`
	Year            OptionalString `json:"year"`
	Course          OptionalString `json:"course"`
	Semester        OptionalString `json:"semester"`
	Subject         OptionalString `json:"subject"`
	Status          OptionalString `json:"status"`
	Link            OptionalString `json:"link"`
}

func (q *QuestionPaper) ResourceID() string { return q.ID }

func (q *QuestionPaper) Field(name string) OptionalString {
	switch name {
	case "accessionNumber":
		return q.AccessionNumber
	case "year":
		return q.Year
	case "course":
		return q.Course
	case "semester":
		return q.Semester
	case "subject":
		return q.Subject
	case "status":
		return q.Status
	case "link":
		return q.Link
	}
	return Absent
}

// UnmarshalJSON decodes the record, accepting "_id" in any scalar form.
func (q *QuestionPaper) UnmarshalJSON(data []byte) error {
	type plain QuestionPaper
	aux := struct {
		*plain
		ID OptionalString `json:"_id"`
	}{plain: (*plain)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	q.ID = aux.ID.Value
	return nil
}

func (q *QuestionPaper) HasField(name string) bool {
	switch name {
	case "accessionNumber", "year", "course", "semester", "subject", "status", "link":
		return true
	}
	return false
}

// ResearchPaper is a record of the "research-papers" type.
type ResearchPaper struct {
	ID              string         `json:"_id"`
	AccessionNumber OptionalString `json:"accessionNumber"`
	Title           OptionalString `json:"title"`
	Author          OptionalString `json:"author"`
	PublicationYear OptionalString `json:"publicationYear"`
	Status          OptionalString `json:"status"`
	Link            OptionalString `json:"link"`
}

func (r *ResearchPaper) ResourceID() string { return r.ID }

func (r *ResearchPaper) Field(name string) OptionalString {
	switch name {
	case "accessionNumber":
		return r.AccessionNumber
	case "title":
		return r.Title
	case "author":
		return r.Author
	case "publicationYear":
		return r.PublicationYear
	case "status":
		return r.Status
	case "link":
		return r.Link
	}
	return Absent
}

// UnmarshalJSON decodes the record, accepting "_id" in any scalar form.
func (r *ResearchPaper) UnmarshalJSON(data []byte) error {
	type plain ResearchPaper
	aux := struct {
		*plain
		ID OptionalString `json:"_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = aux.ID.Value
	return nil
}

func (r *ResearchPaper) HasField(name string) bool {
	switch name {
	case "accessionNumber", "title", "author", "publicationYear", "status", "link":
		return true
	}
	return false
}

// GenericResource holds records of types the portal has no shape for.
type GenericResource struct {
	ID     string
	Values map[string]OptionalString
}

func (g *GenericResource) ResourceID() string { return g.ID }

func (g *GenericResource) Field(name string) OptionalString {
	if g.Values == nil {
		return Absent
	}
	return g.Values[name]
}

func (g *GenericResource) HasField(name string) bool {
	_, ok := g.Values[name]
	return ok
}

// UnmarshalJSON decodes an arbitrary JSON object, lifting "_id" into ID.
func (g *GenericResource) UnmarshalJSON(data []byte) error {
	raw := map[string]OptionalString{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if id, ok := raw["_id"]; ok {
		g.ID = id.Value
		delete(raw, "_id")
	}
	g.Values = raw
	return nil
}

// MarshalJSON writes the record back as a flat object.
func (g *GenericResource) MarshalJSON() ([]byte, error) {
	out := make(map[string]OptionalString, len(g.Values)+1)
	for k, v := range g.Values {
		out[k] = v
	}
	out["_id"] = Present(g.ID)
	return json.Marshal(out)
}
