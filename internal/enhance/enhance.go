package enhance

import "log/slog"

// Enhance runs the whole core pipeline on one payload: it validates the
// threshold, parses the payload and reconciles it. wordCount, when non-nil,
// is copied into the statistics; it is computed by the caller from the
// original input.
func Enhance(payload []byte, threshold float64, wordCount *int, logger *slog.Logger) (*Reconciliation, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	doc, err := Parser{Logger: logger}.Parse(payload)
	if err != nil {
		return nil, err
	}
	rec, err := Reconcile(doc, threshold)
	if err != nil {
		return nil, err
	}
	if wordCount != nil {
		n := *wordCount
		rec.Stats.WordCount = &n
	}
	return rec, nil
}
