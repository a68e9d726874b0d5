package model

// ErrorResponse is the JSON body of every failed API call.
// Code is one of the errs.Code values so clients can branch without parsing Error.
type ErrorResponse struct {
	Error       string `json:"error"`
	Code        string `json:"code,omitempty"`
	OutcomeCode string `json:"outcomeCode,omitempty"`
}
