package enhance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_InvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `this is plain text`},
		{"object", `{"@id": "x"}`},
		{"string", `"hello"`},
		{"truncated array", `[{"@id": "x"}`},
		{"element not an object", `[{"@id": "x"}, 42]`},
		{"entity without id", `[{"@type": ["http://dbpedia.org/ontology/Place"]}]`},
		{"id is not a string", `[{"@id": 7}]`},
		{"entity annotation without id", `[{"@type": ["http://fise.iks-project.eu/ontology/Enhancement", "http://fise.iks-project.eu/ontology/EntityAnnotation"]}]`},
		{"text annotation without id", `[{"@type": ["http://fise.iks-project.eu/ontology/Enhancement", "http://fise.iks-project.eu/ontology/TextAnnotation"]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.payload))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`Paris is the capital of France.`))
	assert.ErrorIs(t, err, ErrMalformedJSON)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = Parse([]byte(`{"fulltext": "x"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.NotErrorIs(t, err, ErrMalformedJSON)
}

func TestParse_EmptyArray(t *testing.T) {
	doc, err := Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, doc.Entities)
	assert.Empty(t, doc.EntityAnnotations)
	assert.Empty(t, doc.TextAnnotations)
	assert.Nil(t, doc.Fulltext)
}

func TestParse_StanbolFixture(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "paris.json"))
	require.NoError(t, err)

	doc, err := Parse(data)
	require.NoError(t, err)

	require.NotNil(t, doc.Fulltext)
	assert.Equal(t, "Paris is the capital of France. Vienna is the capital of Austria.", *doc.Fulltext)

	require.Len(t, doc.Entities, 3)
	require.Len(t, doc.EntityAnnotations, 2)
	require.Len(t, doc.TextAnnotations, 2)

	t.Run("entity with every field", func(t *testing.T) {
		paris := doc.Entities[0]
		assert.Equal(t, "http://dbpedia.org/resource/Paris", paris.ID)
		assert.ElementsMatch(t, []string{"http://dbpedia.org/ontology/City", "http://dbpedia.org/ontology/Place"}, paris.Types)
		require.NotNil(t, paris.Depiction)
		assert.Equal(t, "http://upload.wikimedia.org/paris.jpg", *paris.Depiction)
		require.NotNil(t, paris.Comment)
		assert.Contains(t, *paris.Comment, "capital")
		require.NotNil(t, paris.Label)
		assert.Equal(t, "Paris", *paris.Label)
		require.NotNil(t, paris.Latitude)
		assert.Equal(t, "48.8567", *paris.Latitude)
		require.NotNil(t, paris.Longitude)
		assert.Equal(t, "2.3508", *paris.Longitude)
		assert.True(t, paris.HasCoordinates())
	})

	t.Run("label without english candidate stays unset", func(t *testing.T) {
		vienna := doc.Entities[1]
		assert.Nil(t, vienna.Label)
		assert.Equal(t, vienna.ID, vienna.DisplayName())
	})

	t.Run("bare entity leaves optional fields nil", func(t *testing.T) {
		france := doc.Entities[2]
		assert.Equal(t, []string{}, france.Types)
		assert.Nil(t, france.Depiction)
		assert.Nil(t, france.Comment)
		assert.Nil(t, france.Label)
		assert.Nil(t, france.Latitude)
		assert.Nil(t, france.Longitude)
		assert.False(t, france.HasCoordinates())
	})

	t.Run("entity annotation", func(t *testing.T) {
		ea := doc.EntityAnnotations[0]
		assert.Equal(t, "urn:enhancement-ea-paris", ea.ID)
		assert.InDelta(t, 0.92, ea.Confidence, 1e-9)
		assert.Equal(t, "http://dbpedia.org/resource/Paris", ea.Reference)
		assert.Equal(t, []string{"urn:enhancement-ta-paris"}, ea.Relations)
		require.NotNil(t, ea.EntityLabel)
		assert.Equal(t, "Paris", *ea.EntityLabel)
		assert.Equal(t, []string{"http://dbpedia.org/ontology/City"}, ea.EntityTypes)
	})

	t.Run("confidence encoded as string", func(t *testing.T) {
		assert.InDelta(t, 0.41, doc.EntityAnnotations[1].Confidence, 1e-9)
	})

	t.Run("text annotation", func(t *testing.T) {
		ta := doc.TextAnnotations[0]
		assert.Equal(t, "urn:enhancement-ta-paris", ta.ID)
		require.NotNil(t, ta.SelectedText)
		assert.Equal(t, "Paris", *ta.SelectedText)
		require.NotNil(t, ta.SelectionContext)
		require.NotNil(t, ta.Start)
		require.NotNil(t, ta.End)
		assert.Equal(t, 0, *ta.Start)
		assert.Equal(t, 5, *ta.End)
		assert.Nil(t, doc.TextAnnotations[1].SelectionContext)
	})
}

func TestParse_UnrecognizedEnhancementType(t *testing.T) {
	unknown := map[string]any{
		KeyID:   "urn:enhancement-x",
		KeyType: []string{TypeEnhancement, "http://fise.iks-project.eu/ontology/UnknownKind"},
	}

	positions := map[string][]map[string]any{
		"first":  {unknown, entityNode("A"), entityAnnotationNode("ea1", "A", 0.9)},
		"middle": {entityNode("A"), unknown, entityAnnotationNode("ea1", "A", 0.9)},
		"last":   {entityNode("A"), entityAnnotationNode("ea1", "A", 0.9), unknown},
	}

	for name, nodes := range positions {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse(payload(t, nodes...))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrUnrecognizedEnhancementType)

			var typeErr *UnrecognizedEnhancementTypeError
			require.True(t, errors.As(err, &typeErr))
			assert.Equal(t, "http://fise.iks-project.eu/ontology/UnknownKind", typeErr.Type)
		})
	}
}

func TestParse_UnrecognizedTypeWinsOverMissingID(t *testing.T) {
	const kind = "http://fise.iks-project.eu/ontology/UnknownKind"
	anonymous := map[string]any{KeyType: []string{TypeEnhancement, kind}}
	identified := map[string]any{KeyID: "urn:u", KeyType: []string{TypeEnhancement, kind}}

	tests := []struct {
		name  string
		nodes []map[string]any
		index int
	}{
		{"unknown subtype without id", []map[string]any{entityNode("A"), anonymous}, 1},
		{"unknown subtype after entity without id", []map[string]any{
			{KeyType: []string{"x"}},
			identified,
		}, 1},
		{"unknown subtype after annotation without id", []map[string]any{
			{KeyType: []string{TypeEnhancement, TypeEntityAnnotation}},
			entityNode("A"),
			anonymous,
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(payload(t, tt.nodes...))
			assert.Nil(t, doc)
			require.ErrorIs(t, err, ErrUnrecognizedEnhancementType)
			assert.NotErrorIs(t, err, ErrInvalidPayload)

			var typeErr *UnrecognizedEnhancementTypeError
			require.True(t, errors.As(err, &typeErr))
			assert.Equal(t, tt.index, typeErr.Index)
			assert.Equal(t, kind, typeErr.Type)
		})
	}
}

func TestParse_TextAnnotationOffsets(t *testing.T) {
	tests := []struct {
		name  string
		start any
		want  *int
	}{
		{"integer", 7, ptr(7)},
		{"integer as string", "12", ptr(12)},
		{"integral float", 3.0, ptr(3)},
		{"fractional", 2.5, nil},
		{"negative", -1, nil},
		{"beyond int range", 1e300, nil},
		{"not a number", "soon", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := textAnnotationNode("ta1", "Paris")
			node[KeyStart] = []map[string]any{{KeyValue: tt.start}}
			node[KeyEnd] = tt.start

			doc := parse(t, node)
			require.Len(t, doc.TextAnnotations, 1)
			ta := doc.TextAnnotations[0]
			assert.Equal(t, tt.want, ta.Start)
			assert.Equal(t, tt.want, ta.End)
		})
	}
}

func TestParse_TypeTagDispatch(t *testing.T) {
	t.Run("enhancement marker not first is an entity", func(t *testing.T) {
		doc := parse(t, map[string]any{
			KeyID:   "X",
			KeyType: []string{TypeEntityAnnotation, TypeEnhancement},
		})
		require.Len(t, doc.Entities, 1)
		assert.Empty(t, doc.EntityAnnotations)
	})

	t.Run("three element tag array is an entity", func(t *testing.T) {
		doc := parse(t, map[string]any{
			KeyID:   "X",
			KeyType: []string{TypeEnhancement, TypeEntityAnnotation, "extra"},
		})
		require.Len(t, doc.Entities, 1)
	})

	t.Run("single string type is an entity type", func(t *testing.T) {
		doc := parse(t, map[string]any{KeyID: "X", KeyType: "http://dbpedia.org/ontology/Person"})
		require.Len(t, doc.Entities, 1)
		assert.Equal(t, []string{"http://dbpedia.org/ontology/Person"}, doc.Entities[0].Types)
	})
}

func TestParse_Fulltext(t *testing.T) {
	t.Run("first fulltext wins", func(t *testing.T) {
		doc := parse(t,
			map[string]any{KeyFulltext: "first"},
			entityNode("A"),
			map[string]any{KeyFulltext: "second"},
		)
		require.NotNil(t, doc.Fulltext)
		assert.Equal(t, "first", *doc.Fulltext)
		assert.Len(t, doc.Entities, 1)
	})

	t.Run("fulltext record with enhancement tags is still fulltext", func(t *testing.T) {
		doc := parse(t, map[string]any{
			KeyFulltext: "text",
			KeyID:       "urn:x",
			KeyType:     []string{TypeEnhancement, "bogus"},
		})
		require.NotNil(t, doc.Fulltext)
		assert.Empty(t, doc.Entities)
	})
}

func TestParse_EntityAnnotationRequiredFields(t *testing.T) {
	t.Run("missing confidence", func(t *testing.T) {
		node := entityAnnotationNode("ea1", "A", 0.9)
		delete(node, KeyConfidence)
		_, err := Parse(payload(t, node))
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("non numeric confidence", func(t *testing.T) {
		node := entityAnnotationNode("ea1", "A", 0.9)
		node[KeyConfidence] = []map[string]any{{KeyValue: "high"}}
		_, err := Parse(payload(t, node))
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("missing reference", func(t *testing.T) {
		node := entityAnnotationNode("ea1", "A", 0.9)
		delete(node, KeyEntityReference)
		_, err := Parse(payload(t, node))
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("confidence above one is kept verbatim", func(t *testing.T) {
		doc := parse(t, entityAnnotationNode("ea1", "A", 1.5))
		assert.Equal(t, 1.5, doc.EntityAnnotations[0].Confidence)
	})
}

func TestParse_LastEnglishLabelWins(t *testing.T) {
	doc := parse(t, map[string]any{
		KeyID: "A",
		KeyLabel: []map[string]any{
			{KeyValue: "One", KeyLanguage: "en"},
			{KeyValue: "Zwei", KeyLanguage: "de"},
			{KeyValue: "Two", KeyLanguage: "en"},
		},
	})
	require.NotNil(t, doc.Entities[0].Label)
	assert.Equal(t, "Two", *doc.Entities[0].Label)
}
