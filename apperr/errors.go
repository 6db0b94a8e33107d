// Package apperr defines the error taxonomy shared by the tool services.
// Handlers convert these into JSON error envelopes; see server.
package apperr

import "fmt"

// Validation marks missing or malformed request input. Always a 400.
type Validation struct {
	Message string
}

func (e *Validation) Error() string { return e.Message }

// Config marks a required credential or setting that is not configured.
type Config struct {
	Missing string
}

func (e *Config) Error() string { return e.Missing + " is not configured" }

// Provider marks an upstream non-success response or a success response
// that is missing the contracted payload. StatusCode is the upstream HTTP
// status when known (0 otherwise) and is propagated to the caller; Body
// carries the raw upstream reply for the details field.
type Provider struct {
	Provider   string
	StatusCode int
	Message    string
	Body       string
}

func (e *Provider) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
}

// Parse marks an upstream textual reply that is not valid JSON even after
// stripping an optional surrounding code fence.
type Parse struct {
	Message    string
	RawContent string
}

func (e *Parse) Error() string { return e.Message }

// Schema marks a structurally valid upstream reply that does not contain
// exactly the contracted keys. Received lists the keys that were present.
type Schema struct {
	Message  string
	Received []string
}

func (e *Schema) Error() string { return e.Message }

// Fetch marks a non-success status while fetching external content.
type Fetch struct {
	URL        string
	StatusCode int
}

func (e *Fetch) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Network marks a transport-level failure while fetching external content.
type Network struct {
	URL string
	Err error
}

func (e *Network) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }

func (e *Network) Unwrap() error { return e.Err }
