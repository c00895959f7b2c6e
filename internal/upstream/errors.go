package upstream

import (
	"encoding/json"
	"fmt"

	"github.com/curatorhq/social-admin-gateway/internal/normalize"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
}

// errorMessageKeys are the candidate keys for the backend's error envelope.
// "error" may itself be an object carrying the message.
var (
	errorRelKeys     = []string{"error"}
	errorMessageKeys = []string{"message", "detail", "errorMessage", "error_message"}
)

// parseAPIError extracts a human-readable message from the backend's error
// envelope. The envelope shape drifts like everything else upstream, so the
// lookup is candidate-key based and falls back to the raw body.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: string(body)}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	if msg := normalize.AsString(normalize.Field(payload, "error")); msg != "" {
		apiErr.Message = msg
		return apiErr
	}
	if msg := normalize.AsString(normalize.NestedField(payload, errorRelKeys, errorMessageKeys)); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}
