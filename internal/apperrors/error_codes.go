package apperrors

type ErrorCode string

const (
	ErrCodeInternalError     ErrorCode = "internal_error"
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"
)
