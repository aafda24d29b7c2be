package enhance

import "slices"

// Reconcile joins the entities of doc with the entity annotations that pass
// threshold and with the text annotations those annotations relate to.
//
// Results follow entity parse order. Each entity is matched with the first
// surviving annotation that references it; entities without one are dropped,
// and an entity ID never appears twice. Context lists follow text annotation
// parse order. An empty result is reported as *NoEntitiesAboveThresholdError.
func Reconcile(doc *Document, threshold float64) (*Reconciliation, error) {
	kept := FilterByConfidence(doc.EntityAnnotations, threshold)

	byReference := make(map[string]*EntityAnnotation, len(kept))
	for _, ea := range kept {
		if _, ok := byReference[ea.Reference]; !ok {
			byReference[ea.Reference] = ea
		}
	}

	textPositions := make(map[string][]int, len(doc.TextAnnotations))
	for i, ta := range doc.TextAnnotations {
		textPositions[ta.ID] = append(textPositions[ta.ID], i)
	}

	results := make([]Result, 0, len(doc.Entities))
	seen := make(map[string]struct{}, len(doc.Entities))
	for _, entity := range doc.Entities {
		if _, dup := seen[entity.ID]; dup {
			continue
		}
		ea, ok := byReference[entity.ID]
		if !ok {
			continue
		}
		seen[entity.ID] = struct{}{}
		results = append(results, Result{
			Entity:     entity,
			Annotation: ea,
			Context:    contextFor(ea, doc.TextAnnotations, textPositions),
		})
	}

	if len(results) == 0 {
		return nil, &NoEntitiesAboveThresholdError{Threshold: threshold}
	}

	return &Reconciliation{
		Results:   results,
		Threshold: threshold,
		Fulltext:  doc.Fulltext,
		Stats: Stats{
			TotalEntities:   len(doc.Entities),
			MatchedEntities: len(results),
		},
	}, nil
}

// contextFor returns the text annotations named in ea's relations.
func contextFor(ea *EntityAnnotation, texts []*TextAnnotation, positions map[string][]int) []*TextAnnotation {
	var idx []int
	wanted := make(map[string]struct{}, len(ea.Relations))
	for _, rel := range ea.Relations {
		if _, dup := wanted[rel]; dup {
			continue
		}
		wanted[rel] = struct{}{}
		idx = append(idx, positions[rel]...)
	}
	slices.Sort(idx)

	out := make([]*TextAnnotation, 0, len(idx))
	for _, i := range idx {
		out = append(out, texts[i])
	}
	return out
}
