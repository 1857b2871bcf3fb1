package models

// RenderKind discriminates RenderSpec variants.
type RenderKind string

const (
	RenderStatusBadge  RenderKind = "status_badge"
	RenderExternalLink RenderKind = "external_link"
	RenderPlainText    RenderKind = "plain_text"
)

// BadgeClass is the traffic-light styling of a status badge.
type BadgeClass string

const (
	BadgePositive BadgeClass = "positive"
	BadgeCaution  BadgeClass = "caution"
	BadgeNegative BadgeClass = "negative"
	BadgeNeutral  BadgeClass = "neutral"
)

// FallbackText is shown for missing values.
const FallbackText = "N/A"

// RenderSpec is the renderable form of one field of one record.
type RenderSpec interface {
	Kind() RenderKind
	Caption() string
	// Text is the plain textual form used for exports.
	Text() string
}

// StatusBadge renders a categorical status with traffic-light styling.
type StatusBadge struct {
	Label string         `json:"label"`
	Value OptionalString `json:"value"`
	Class BadgeClass     `json:"class"`
}

func (b StatusBadge) Kind() RenderKind { return RenderStatusBadge }
func (b StatusBadge) Caption() string  { return b.Label }
func (b StatusBadge) Text() string     { return b.Value.Value }

// ExternalLink renders an external reference.
type ExternalLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

func (l ExternalLink) Kind() RenderKind { return RenderExternalLink }
func (l ExternalLink) Caption() string  { return l.Label }
func (l ExternalLink) Text() string     { return l.URL }

// PlainText renders a caption and a value, or FallbackText when missing.
type PlainText struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (p PlainText) Kind() RenderKind { return RenderPlainText }
func (p PlainText) Caption() string  { return p.Label }
func (p PlainText) Text() string     { return p.Value }

// Card is a rendered record: its identifier and one RenderSpec per schema field.
type Card struct {
	ID     string       `json:"id"`
	Fields []RenderSpec `json:"fields"`
}

// RenderedField is the wire form of a RenderSpec.
type RenderedField struct {
	Kind  RenderKind `json:"kind"`
	Label string     `json:"label"`
	Value string     `json:"value"`
	Class BadgeClass `json:"class,omitempty"`
}

// Wire flattens the card for JSON and websocket consumers.
func (c Card) Wire() CardView {
	fields := make([]RenderedField, 0, len(c.Fields))
	for _, spec := range c.Fields {
		field := RenderedField{Kind: spec.Kind(), Label: spec.Caption(), Value: spec.Text()}
		if badge, ok := spec.(StatusBadge); ok {
			field.Class = badge.Class
		}
		fields = append(fields, field)
	}
	return CardView{ID: c.ID, Fields: fields}
}

// CardView is the serialisable form of a Card.
type CardView struct {
	ID     string          `json:"id"`
	Fields []RenderedField `json:"fields"`
}
