package enhance

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// Parser decodes enhancement arrays. The zero value is ready to use.
type Parser struct {
	// Logger receives debug messages about ignored records; nil discards them.
	Logger *slog.Logger
}

// Parse decodes payload with a zero-value Parser.
func Parse(payload []byte) (*Document, error) {
	return Parser{}.Parse(payload)
}

// Parse decodes a flat JSON array into a Document. It fails with
// ErrInvalidPayload when the payload is not a JSON array of records, and with
// an *UnrecognizedEnhancementTypeError when any enhancement record has an
// unknown subtype. No partial Document is returned on error.
func (p Parser) Parse(payload []byte) (*Document, error) {
	if !gjson.ValidBytes(payload) {
		return nil, ErrMalformedJSON
	}
	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return nil, invalidf("top-level value is not an array")
	}
	if err := validateEnvelope(payload); err != nil {
		return nil, err
	}

	nodes := root.Array()
	if err := checkEnhancementTypes(nodes); err != nil {
		return nil, err
	}

	doc := &Document{}
	for i, node := range nodes {
		rec, err := decodeRecord(i, node.Map())
		if err != nil {
			return nil, err
		}
		switch r := rec.(type) {
		case Fulltext:
			if doc.Fulltext != nil {
				p.logger().Debug("ignoring additional fulltext record", "index", i)
				continue
			}
			text := string(r)
			doc.Fulltext = &text
		case *Entity:
			doc.Entities = append(doc.Entities, r)
		case *EntityAnnotation:
			doc.EntityAnnotations = append(doc.EntityAnnotations, r)
		case *TextAnnotation:
			doc.TextAnnotations = append(doc.TextAnnotations, r)
		}
	}
	return doc, nil
}

func (p Parser) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// checkEnhancementTypes fails on the first enhancement record with an unknown
// subtype. It runs before any record is decoded so an unknown subtype is
// reported regardless of what else is wrong with the payload.
func checkEnhancementTypes(nodes []gjson.Result) error {
	for i, node := range nodes {
		m := node.Map()
		if _, ok := m[KeyFulltext]; ok {
			continue
		}
		tags := m[KeyType]
		if !isEnhancement(tags) {
			continue
		}
		if subtype := tags.Array()[1].String(); !knownSubtype(subtype) {
			return &UnrecognizedEnhancementTypeError{Index: i, Type: subtype}
		}
	}
	return nil
}

func knownSubtype(subtype string) bool {
	return subtype == TypeTextAnnotation || subtype == TypeEntityAnnotation
}

// decodeRecord classifies one array element and decodes it.
func decodeRecord(index int, node map[string]gjson.Result) (Record, error) {
	if ft, ok := node[KeyFulltext]; ok {
		return Fulltext(ft.String()), nil
	}

	tags := node[KeyType]
	if !isEnhancement(tags) {
		return decodeEntity(index, node)
	}

	subtype := tags.Array()[1].String()
	switch subtype {
	case TypeTextAnnotation:
		return decodeTextAnnotation(index, node)
	case TypeEntityAnnotation:
		return decodeEntityAnnotation(index, node)
	default:
		return nil, &UnrecognizedEnhancementTypeError{Index: index, Type: subtype}
	}
}

// recordID returns the string @id of a record.
func recordID(index int, kind string, node map[string]gjson.Result) (string, error) {
	id := node[KeyID]
	if id.Type != gjson.String {
		return "", invalidf("record %d: %s has no string @id", index, kind)
	}
	return id.Str, nil
}

// isEnhancement reports whether tags is a two-element array whose first
// element is the Enhancement marker.
func isEnhancement(tags gjson.Result) bool {
	if !tags.IsArray() {
		return false
	}
	arr := tags.Array()
	return len(arr) == 2 && arr[0].String() == TypeEnhancement
}

func decodeEntity(index int, node map[string]gjson.Result) (*Entity, error) {
	id, err := recordID(index, "entity", node)
	if err != nil {
		return nil, err
	}
	e := &Entity{
		ID:    id,
		Types: stringList(node[KeyType]),
	}
	if v := first(node[KeyDepiction]).Map()[KeyID]; v.Exists() {
		e.Depiction = ptr(v.String())
	}
	if v, ok := literal(first(node[KeyComment])); ok {
		e.Comment = ptr(v)
	}
	if v, ok := literal(first(node[KeyLatitude])); ok {
		e.Latitude = ptr(v)
	}
	if v, ok := literal(first(node[KeyLongitude])); ok {
		e.Longitude = ptr(v)
	}
	e.Label = englishLabel(node[KeyLabel])
	return e, nil
}

func decodeEntityAnnotation(index int, node map[string]gjson.Result) (*EntityAnnotation, error) {
	id, err := recordID(index, "entity annotation", node)
	if err != nil {
		return nil, err
	}
	ea := &EntityAnnotation{
		ID:          id,
		EntityTypes: references(node[KeyEntityType]),
	}

	conf, ok := number(first(node[KeyConfidence]))
	if !ok {
		return nil, invalidf("record %d: entity annotation %q has no numeric confidence", index, ea.ID)
	}
	ea.Confidence = conf

	ref := references(node[KeyEntityReference])
	if len(ref) == 0 {
		return nil, invalidf("record %d: entity annotation %q has no entity reference", index, ea.ID)
	}
	ea.Reference = ref[0]
	ea.Relations = references(node[KeyRelation])

	if label := englishLabel(node[KeyEntityLabel]); label != nil {
		ea.EntityLabel = label
	} else if v, ok := literal(first(node[KeyEntityLabel])); ok {
		ea.EntityLabel = ptr(v)
	}
	return ea, nil
}

func decodeTextAnnotation(index int, node map[string]gjson.Result) (*TextAnnotation, error) {
	id, err := recordID(index, "text annotation", node)
	if err != nil {
		return nil, err
	}
	ta := &TextAnnotation{ID: id}
	if v, ok := literal(first(node[KeySelectedText])); ok {
		ta.SelectedText = ptr(v)
	}
	if v, ok := literal(first(node[KeySelectionContext])); ok {
		ta.SelectionContext = ptr(v)
	}
	ta.Start = offset(first(node[KeyStart]))
	ta.End = offset(first(node[KeyEnd]))
	return ta, nil
}

// offset returns a character offset, or nil when v is not a non-negative
// integer that fits in an int.
func offset(v gjson.Result) *int {
	f, ok := number(v)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return nil
	}
	if f < 0 || f >= math.MaxInt {
		return nil
	}
	return ptr(int(f))
}

// englishLabel returns the value of the last "en" tagged candidate.
func englishLabel(labels gjson.Result) *string {
	if !labels.IsArray() {
		return nil
	}
	var label *string
	for _, candidate := range labels.Array() {
		m := candidate.Map()
		if m[KeyLanguage].String() != LabelLanguage {
			continue
		}
		if v := m[KeyValue]; v.Exists() {
			label = ptr(v.String())
		}
	}
	return label
}

// first returns the first element of an array value, or the value itself
// when it is not an array.
func first(v gjson.Result) gjson.Result {
	if !v.IsArray() {
		return v
	}
	arr := v.Array()
	if len(arr) == 0 {
		return gjson.Result{}
	}
	return arr[0]
}

// unwrap returns the @value of a JSON-LD value object, or v for plain values.
func unwrap(v gjson.Result) gjson.Result {
	if v.IsObject() {
		return v.Map()[KeyValue]
	}
	return v
}

// literal returns a scalar as text. Numbers keep their source spelling.
func literal(v gjson.Result) (string, bool) {
	v = unwrap(v)
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number:
		return v.Raw, true
	case gjson.True, gjson.False:
		return v.Raw, true
	default:
		return "", false
	}
}

// number returns a numeric scalar, accepting numbers encoded as strings.
func number(v gjson.Result) (float64, bool) {
	v = unwrap(v)
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(v.Str, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// references collects the @id of every node reference in v. Bare strings
// are accepted as references too.
func references(v gjson.Result) []string {
	if !v.Exists() {
		return nil
	}
	items := []gjson.Result{v}
	if v.IsArray() {
		items = v.Array()
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch {
		case item.IsObject():
			if id := item.Map()[KeyID]; id.Exists() {
				out = append(out, id.String())
			}
		case item.Type == gjson.String:
			out = append(out, item.Str)
		}
	}
	return out
}

// stringList returns every scalar in an array value as text.
func stringList(v gjson.Result) []string {
	if v.Type == gjson.String {
		return []string{v.Str}
	}
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		out = append(out, item.String())
	}
	return out
}

func ptr[T any](v T) *T { return &v }
