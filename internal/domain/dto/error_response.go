package dto

import "time"

// ErrorResponse is the JSON body returned by every failing endpoint.
type ErrorResponse struct {
	Message      string    `json:"message" example:"ticker is required"`
	ErrorDetails string    `json:"error,omitempty" example:"Key: 'DashboardQuery.Ticker' Error:Field validation for 'Ticker' failed on the 'required' tag"`
	Timestamp    time.Time `json:"timestamp" example:"2025-09-20T12:00:00Z"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
