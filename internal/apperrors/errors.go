package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user may not access the resource.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// Receipt extraction error kinds. Each maps to exactly one user-facing cause;
// handlers translate them with errors.Is and never retry automatically.
var (
	// ErrNotConfigured is returned when the vision API key is missing or still
	// the placeholder value. No network call is attempted.
	ErrNotConfigured = errors.New("vision service not configured")

	// ErrUnsupportedFile is returned for media types outside the allow-list,
	// before any I/O.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrBadCredential is returned when the vision service rejects the API key.
	ErrBadCredential = errors.New("invalid vision API credentials")

	// ErrRateLimited is returned when the vision service reports rate limiting.
	ErrRateLimited = errors.New("rate limit exceeded, retry later")

	// ErrPayloadTooLarge is returned when the file exceeds the configured size
	// cap or the service rejects the payload size.
	ErrPayloadTooLarge = errors.New("file too large")

	// ErrServiceFailure is returned for any other non-success response from the
	// vision service.
	ErrServiceFailure = errors.New("vision service error")

	// ErrNetwork is returned when no response is received at the transport level.
	ErrNetwork = errors.New("network error")

	// ErrTimeout is returned when the configured deadline elapses before any
	// response arrives. Distinct from ErrNetwork in message only.
	ErrTimeout = errors.New("request timeout")

	// ErrParseFailure is returned when the model output is not valid JSON.
	ErrParseFailure = errors.New("failed to parse receipt data")

	// ErrMissingField is returned when the model output is valid JSON but lacks
	// a required receipt field. Distinct from ErrParseFailure.
	ErrMissingField = errors.New("missing required receipt field")
)
