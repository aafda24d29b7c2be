package enhance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func entityNode(id string) map[string]any {
	return map[string]any{KeyID: id}
}

func entityAnnotationNode(id, ref string, confidence float64, relations ...string) map[string]any {
	rels := make([]map[string]any, 0, len(relations))
	for _, r := range relations {
		rels = append(rels, map[string]any{KeyID: r})
	}
	return map[string]any{
		KeyID:              id,
		KeyType:            []string{TypeEnhancement, TypeEntityAnnotation},
		KeyConfidence:      []map[string]any{{KeyValue: confidence}},
		KeyEntityReference: []map[string]any{{KeyID: ref}},
		KeyRelation:        rels,
	}
}

func textAnnotationNode(id, selected string) map[string]any {
	return map[string]any{
		KeyID:           id,
		KeyType:         []string{TypeEnhancement, TypeTextAnnotation},
		KeySelectedText: []map[string]any{{KeyValue: selected, KeyLanguage: "en"}},
	}
}

func payload(t *testing.T, nodes ...map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(nodes)
	require.NoError(t, err)
	return data
}

func parse(t *testing.T, nodes ...map[string]any) *Document {
	t.Helper()
	doc, err := Parse(payload(t, nodes...))
	require.NoError(t, err)
	return doc
}

func resultIDs(rec *Reconciliation) []string {
	ids := make([]string, 0, len(rec.Results))
	for _, r := range rec.Results {
		ids = append(ids, r.Entity.ID)
	}
	return ids
}
