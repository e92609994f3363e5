package code

// HTTP status codes.
const (
	// StatusOK - 200: OK.
	StatusOK = 200
	// StatusCreated - 201: created.
	StatusCreated = 201
	// StatusBadRequest - 400: bad request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: unauthorized.
	StatusUnauthorized = 401
	// StatusForbidden - 403: forbidden.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: internal server error.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: dependency unavailable.
	StatusServiceUnavailable = 503
)

// Common codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body could not be bound.
	ErrBind
	// ErrValidation - 400: request failed validation.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: rate limited.
	ErrTooManyRequests
	// ErrServiceUnavailable - 503: dependency down.
	ErrServiceUnavailable
)

// Account codes (101xxx).
const (
	// ErrAccountNotFound - 404: account does not exist.
	ErrAccountNotFound int = iota + 101000
	// ErrAccountLookupFailed - 400: account missing right after upsert.
	ErrAccountLookupFailed
	// ErrOTPInvalid - 401: mobile number and OTP do not match.
	ErrOTPInvalid
	// ErrOTPIssue - 500: OTP could not be stored or delivered.
	ErrOTPIssue
	// ErrTokenIssue - 500: login token could not be signed.
	ErrTokenIssue
)

// Census codes (102xxx).
const (
	// ErrCensusInvalid - 400: census form failed validation.
	ErrCensusInvalid int = iota + 102000
	// ErrHouseholdNotFound - 404: household head does not exist.
	ErrHouseholdNotFound
)

// Database codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record not found.
	ErrRecordNotFound
)
