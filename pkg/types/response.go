package types

// Response wraps every successful payload under a data key.
type Response struct {
	Data any `json:"data"`
}

// ErrorBody is the public shape of a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps ErrorBody under an error key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
