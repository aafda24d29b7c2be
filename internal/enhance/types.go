// Package enhance decodes Stanbol enhancement graphs and reconciles the
// entities they contain with their confidence and context annotations.
//
// Everything in this package is pure: no I/O, no package-level mutable state.
// The confidence threshold is passed explicitly on every call, so a single
// process can reconcile many requests concurrently.
package enhance

// Record is one decoded element of an enhancement array. It is one of
// *Entity, *EntityAnnotation, *TextAnnotation or Fulltext.
type Record interface {
	isRecord()
}

// Entity is a subject resource extracted from the text and eligible for display.
// Optional attributes are nil when the source record did not carry them.
type Entity struct {
	ID        string   `json:"id"`
	Types     []string `json:"types"`
	Depiction *string  `json:"depiction,omitempty"`
	Comment   *string  `json:"comment,omitempty"`
	Label     *string  `json:"label,omitempty"`
	Latitude  *string  `json:"latitude,omitempty"`
	Longitude *string  `json:"longitude,omitempty"`
}

// DisplayName returns the English label when present, otherwise the ID.
func (e *Entity) DisplayName() string {
	if e.Label != nil && *e.Label != "" {
		return *e.Label
	}
	return e.ID
}

// HasCoordinates reports whether both latitude and longitude are set.
func (e *Entity) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// EntityAnnotation links an Entity to the text with a confidence score.
type EntityAnnotation struct {
	ID          string   `json:"id"`
	Confidence  float64  `json:"confidence"`
	Reference   string   `json:"reference"`
	Relations   []string `json:"relations"`
	EntityLabel *string  `json:"entity_label,omitempty"`
	EntityTypes []string `json:"entity_types,omitempty"`
}

// TextAnnotation describes the span of text an entity was found in.
type TextAnnotation struct {
	ID               string  `json:"id"`
	SelectedText     *string `json:"selected_text,omitempty"`
	SelectionContext *string `json:"selection_context,omitempty"`
	Start            *int    `json:"start,omitempty"`
	End              *int    `json:"end,omitempty"`
}

// Fulltext is the original input text echoed back by the enhancer.
type Fulltext string

func (*Entity) isRecord()           {}
func (*EntityAnnotation) isRecord() {}
func (*TextAnnotation) isRecord()   {}
func (Fulltext) isRecord()          {}

// Document holds the records of one enhancement array, grouped by kind and
// kept in input order.
type Document struct {
	Entities          []*Entity
	EntityAnnotations []*EntityAnnotation
	TextAnnotations   []*TextAnnotation
	Fulltext          *string
}

// Result is an entity joined with its annotation and context.
type Result struct {
	Entity     *Entity           `json:"entity"`
	Annotation *EntityAnnotation `json:"annotation"`
	Context    []*TextAnnotation `json:"context"`
}

// Stats summarises a reconciliation.
type Stats struct {
	TotalEntities   int  `json:"total_entities"`
	MatchedEntities int  `json:"matched_entities"`
	WordCount       *int `json:"word_count,omitempty"`
}

// Reconciliation is the output of Reconcile.
type Reconciliation struct {
	Results   []Result `json:"results"`
	Stats     Stats    `json:"stats"`
	Threshold float64  `json:"threshold"`
	Fulltext  *string  `json:"fulltext,omitempty"`
}
