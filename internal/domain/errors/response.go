package errors

// ErrorInfo contains detailed error information.
type ErrorInfo struct {
	Code    string `json:"code"`    // Business error code, e.g., "DUPLICATE_ACCOUNT"
	Details string `json:"details"` // Detailed error description
}

// Response is the envelope the central HTTP error handler writes. It mirrors
// the shape of the success envelope in the delivery layer's response package.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
}
