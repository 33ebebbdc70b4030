package registry

import (
	"github.com/xeipuuv/gojsonschema"
)

// envelopeSchema constrains the provider envelope. The record itself stays
// opaque; only the wrapper fields are checked so that a JSON body of the
// wrong shape surfaces as a decode failure instead of a downstream panic.
const envelopeSchema = `{
	"type": "object",
	"properties": {
		"error_code": {"type": "integer"},
		"reason": {"type": "string"},
		"result": {"type": ["object", "null"]}
	},
	"required": ["error_code"]
}`

var envelopeSchemaLoader = gojsonschema.NewStringLoader(envelopeSchema)

// validateEnvelope checks the raw provider body against the envelope schema.
// Non-JSON bodies and shape mismatches both map to a decode-kind error.
func validateEnvelope(body []byte) error {
	result, err := gojsonschema.Validate(envelopeSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &Error{Kind: KindDecode, Message: "provider response is not valid JSON", Cause: err}
	}

	if !result.Valid() {
		msg := "provider response has unexpected shape"
		if errs := result.Errors(); len(errs) > 0 {
			msg = msg + ": " + errs[0].String()
		}
		return &Error{Kind: KindDecode, Message: msg}
	}

	return nil
}
