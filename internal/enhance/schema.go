package enhance

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed envelope.schema.json
var envelopeSchemaJSON string

// envelopeSchema checks the outer shape of a payload: an array of objects.
// Per-record fields are checked after type dispatch.
var envelopeSchema = jsonschema.MustCompileString("envelope.schema.json", envelopeSchemaJSON)

// validateEnvelope validates raw JSON against the envelope schema.
func validateEnvelope(payload []byte) error {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return invalidf("failed to decode payload: %v", err)
	}
	if err := envelopeSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
