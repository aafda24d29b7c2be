package enhance

import "math"

// ValidateThreshold rejects thresholds outside [0, 1], including NaN.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return &ThresholdOutOfRangeError{Threshold: threshold}
	}
	return nil
}

// FilterByConfidence returns the annotations whose confidence is at least
// threshold, in input order. The threshold is not clamped; callers validate
// it with ValidateThreshold first.
func FilterByConfidence(annotations []*EntityAnnotation, threshold float64) []*EntityAnnotation {
	kept := make([]*EntityAnnotation, 0, len(annotations))
	for _, ea := range annotations {
		if ea.Confidence >= threshold {
			kept = append(kept, ea)
		}
	}
	return kept
}
