// This file contains the expected structure of incoming requests to the API. These structs are used to
// validate incoming requests, provide a consistent interface for handling requests, and to pass data to the
// appropriate handlers.

// The document routes take no path parameters; the only input is the optional output format.
// Without it the format is negotiated from the Accept header.

package common

// Output formats of document routes.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type DocumentRequest struct {
	Format string `query:"format" validate:"omitempty,validFormat"`
}
