package enhance

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to one of these.
var (
	// ErrInvalidPayload is returned when the payload is not JSON, is not an
	// array, or contains an element that is not a well-formed record.
	ErrInvalidPayload = errors.New("invalid enhancement payload")

	// ErrUnrecognizedEnhancementType is returned when an enhancement record
	// has a subtype other than TextAnnotation or EntityAnnotation.
	ErrUnrecognizedEnhancementType = errors.New("unrecognized enhancement type")

	// ErrThresholdOutOfRange is returned for thresholds outside [0, 1].
	ErrThresholdOutOfRange = errors.New("confidence threshold out of range")

	// ErrNoEntitiesAboveThreshold is returned when reconciliation yields nothing.
	ErrNoEntitiesAboveThreshold = errors.New("no entities above threshold")

	// ErrMalformedJSON is the ErrInvalidPayload case where the payload does
	// not parse as JSON at all.
	ErrMalformedJSON = fmt.Errorf("%w: payload is not valid JSON", ErrInvalidPayload)
)

// UnrecognizedEnhancementTypeError names the offending subtype and the index
// of the record that carried it.
type UnrecognizedEnhancementTypeError struct {
	Index int
	Type  string
}

func (e *UnrecognizedEnhancementTypeError) Error() string {
	return fmt.Sprintf("record %d: unrecognized enhancement type %q", e.Index, e.Type)
}

func (e *UnrecognizedEnhancementTypeError) Unwrap() error { return ErrUnrecognizedEnhancementType }

// ThresholdOutOfRangeError carries the rejected threshold.
type ThresholdOutOfRangeError struct {
	Threshold float64
}

func (e *ThresholdOutOfRangeError) Error() string {
	return fmt.Sprintf("confidence threshold %v must be between 0 and 1", e.Threshold)
}

func (e *ThresholdOutOfRangeError) Unwrap() error { return ErrThresholdOutOfRange }

// NoEntitiesAboveThresholdError carries the threshold that filtered everything out.
type NoEntitiesAboveThresholdError struct {
	Threshold float64
}

func (e *NoEntitiesAboveThresholdError) Error() string {
	return fmt.Sprintf("there are no entities above the given threshold: %v", e.Threshold)
}

func (e *NoEntitiesAboveThresholdError) Unwrap() error { return ErrNoEntitiesAboveThreshold }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}
