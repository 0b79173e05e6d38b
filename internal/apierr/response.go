// internal/apierr/response.go
package apierr

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard success/error body shape for every JSON response.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func Success(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data, Timestamp: time.Now().UTC()}
}

// ErrorBody is the shape written under Envelope.Error.
type ErrorBody struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Write classifies err through Classify and writes the matching status code
// and envelope to the response, logging internal errors at Error level and
// everything else at Warn.
func Write(c *gin.Context, err error) {
	apiErr := Classify(err)

	body := Envelope{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Error: ErrorBody{
			Code:    apiErr.Code,
			Message: apiErr.Error(),
			Details: apiErr.Details,
		},
	}

	if apiErr.Status >= 500 {
		slog.Error("request failed", "status", apiErr.Status, "code", apiErr.Code, "error", apiErr.Err)
	} else {
		slog.Warn("request rejected", "status", apiErr.Status, "code", apiErr.Code, "error", apiErr.Err)
	}

	c.JSON(apiErr.Status, body)
}
