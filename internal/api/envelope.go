package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire format version clients check before
// parsing the rest of the envelope. Bump only on breaking changes.
const EnvelopeVersion = 1

// APIEnvelope wraps every successful response and simple errors.
// The version field is named "v" on the wire; dashboard clients key
// their parsers off it, so the name is part of the contract.
type APIEnvelope struct {
	Version int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
	Error   string `json:"error,omitempty" doc:"Error message when success is false"`
}

// APIErrorEnvelope wraps errors that carry a machine-readable code and
// structured details, such as validation failures.
type APIErrorEnvelope struct {
	Version int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success" doc:"Always false"`
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Structured error details"`
}

// EnvelopeTransformer wraps all API responses in a versioned envelope.
// Register it on the huma config before creating the adapter.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	// Coded errors keep their structure so clients can branch on the
	// code; everything else collapses into the simple envelope.
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code != "" {
			return APIErrorEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			}, nil
		}
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}, nil
	}

	if err, ok := v.(error); ok {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	// Three-digit status strings compare correctly as strings.
	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: status < "400",
		Data:    v,
	}, nil
}
