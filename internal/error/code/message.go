package code

var codeMessageMap = map[int]string{
	// common
	ErrSuccess:            "Success",
	ErrUnknown:            "Unknown error",
	ErrBind:               "Invalid request body",
	ErrValidation:         "Request validation failed",
	ErrTokenInvalid:       "Invalid authentication token",
	ErrTooManyRequests:    "Too many requests",
	ErrServiceUnavailable: "Service unavailable",

	// account
	ErrAccountNotFound:     "User not found",
	ErrAccountLookupFailed: "User not found",
	ErrOTPInvalid:          "Invalid OTP",
	ErrOTPIssue:            "Failed to send OTP",
	ErrTokenIssue:          "Failed to issue token",

	// census
	ErrCensusInvalid:     "Census form validation failed",
	ErrHouseholdNotFound: "Household not found",

	// database
	ErrDatabase:       "Database error",
	ErrRecordNotFound: "Record not found",
}

var codeStatusMap = map[int]int{
	// common
	ErrSuccess:            StatusOK,
	ErrUnknown:            StatusInternalServerError,
	ErrBind:               StatusBadRequest,
	ErrValidation:         StatusBadRequest,
	ErrTokenInvalid:       StatusUnauthorized,
	ErrTooManyRequests:    StatusTooManyRequests,
	ErrServiceUnavailable: StatusServiceUnavailable,

	// account
	ErrAccountNotFound:     StatusNotFound,
	ErrAccountLookupFailed: StatusBadRequest,
	ErrOTPInvalid:          StatusUnauthorized,
	ErrOTPIssue:            StatusInternalServerError,
	ErrTokenIssue:          StatusInternalServerError,

	// census
	ErrCensusInvalid:     StatusBadRequest,
	ErrHouseholdNotFound: StatusNotFound,

	// database
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the default message for code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Unknown error"
}

// GetStatus returns the HTTP status for code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
