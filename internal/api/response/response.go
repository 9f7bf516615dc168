// internal/api/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/0shark/markettower/internal/core"
)

// Meta contains response metadata.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

// SuccessResponse is the standard success response format.
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ticker  string `json:"ticker,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes a success response with data.
func JSON(w http.ResponseWriter, status int, data any) {
	resp := SuccessResponse{
		Data: data,
		Meta: Meta{Timestamp: time.Now().UTC()},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// Error writes an error response. A *core.FetchError is reported as
// FETCH_FAILED with the ticker and the provider's reason; other coded errors
// keep their own code.
func Error(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: detailFor(err)}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func detailFor(err error) ErrorDetail {
	var fetchErr *core.FetchError
	if errors.As(err, &fetchErr) {
		detail := ErrorDetail{
			Code:    core.ErrFetchFailed.Code,
			Message: fetchErr.Error(),
			Ticker:  fetchErr.Ticker,
		}
		if fetchErr.Cause != nil {
			detail.Cause = fetchErr.Cause.Error()
		}
		return detail
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail := ErrorDetail{Code: coreErr.Code, Message: coreErr.Message}
		if coreErr.Cause != nil {
			detail.Cause = coreErr.Cause.Error()
		}
		return detail
	}

	return ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}
}
