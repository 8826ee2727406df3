package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is the typed transport failure raised for every non-2xx response.
// Callers match it with errors.As and branch on Status/Code.
type APIError struct {
	Status    int
	Message   string
	Code      string
	Details   map[string][]string
	Timestamp time.Time
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway: %d %s (%s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("gateway: %d %s", e.Status, e.Message)
}

// errorBody is the backend's structured error envelope. Every field is
// optional; unknown shapes fall back to a generic message.
type errorBody struct {
	Message   string              `json:"message"`
	Detail    string              `json:"detail"`
	ErrorCode string              `json:"error_code"`
	Details   map[string][]string `json:"details"`
}

// newAPIError builds an APIError from a non-2xx response, extracting the
// human message from the structured body when one is present.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Status:    resp.StatusCode,
		Message:   http.StatusText(resp.StatusCode),
		Timestamp: time.Now(),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}
	switch {
	case eb.Message != "":
		apiErr.Message = eb.Message
	case eb.Detail != "":
		apiErr.Message = eb.Detail
	}
	apiErr.Code = eb.ErrorCode
	apiErr.Details = eb.Details
	return apiErr
}
