package models

// FieldDescriptor names one attribute of a resource type and its caption.
type FieldDescriptor struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// ResourceTypeSchema is the ordered field list for a resource type. Order
// governs render order.
type ResourceTypeSchema []FieldDescriptor

// Has reports whether the schema contains the named field.
func (s ResourceTypeSchema) Has(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Names returns field names in schema order.
func (s ResourceTypeSchema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Labels returns field captions in schema order.
func (s ResourceTypeSchema) Labels() []string {
	labels := make([]string, len(s))
	for i, f := range s {
		labels[i] = f.Label
	}
	return labels
}

// FilterState maps a field name to its current filter text. An empty value
// means the field is unconstrained.
type FilterState map[string]string

// Active reports whether any filter constrains the listing.
func (f FilterState) Active() bool {
	for _, v := range f {
		if v != "" {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the state.
func (f FilterState) Clone() FilterState {
	out := make(FilterState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// FilterControl describes one filter input on the listing page.
type FilterControl struct {
	Field   FieldDescriptor `json:"field"`
	Value   string          `json:"value"`
	Options []string        `json:"options,omitempty"`
}

// Select reports whether the control is rendered as a fixed-vocabulary select.
func (c FilterControl) Select() bool {
	return len(c.Options) > 0
}
