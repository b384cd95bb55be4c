package jwtx

// ErrorCode represents token error categories.
type ErrorCode string

const (
	ErrCodeMalformed        ErrorCode = "token_malformed"
	ErrCodeInvalidSignature ErrorCode = "invalid_signature"
	ErrCodeExpired          ErrorCode = "token_expired"
	ErrCodeAudienceMismatch ErrorCode = "audience_mismatch"
	ErrCodeSigningFailed    ErrorCode = "signing_failed"
	ErrCodeInvalidConfig    ErrorCode = "invalid_config"
)

var errorMessages = map[ErrorCode]string{
	ErrCodeMalformed:        "Malformed token",
	ErrCodeInvalidSignature: "Invalid signature",
	ErrCodeExpired:          "Token expired",
	ErrCodeAudienceMismatch: "Audience mismatch",
	ErrCodeSigningFailed:    "Token signing failed",
	ErrCodeInvalidConfig:    "Invalid configuration",
}

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrMalformed        = &Error{Code: ErrCodeMalformed, Message: errorMessages[ErrCodeMalformed]}
	ErrInvalidSignature = &Error{Code: ErrCodeInvalidSignature, Message: errorMessages[ErrCodeInvalidSignature]}
	ErrExpired          = &Error{Code: ErrCodeExpired, Message: errorMessages[ErrCodeExpired]}
	ErrAudienceMismatch = &Error{Code: ErrCodeAudienceMismatch, Message: errorMessages[ErrCodeAudienceMismatch]}
	ErrSigningFailed    = &Error{Code: ErrCodeSigningFailed, Message: errorMessages[ErrCodeSigningFailed]}
	ErrInvalidConfig    = &Error{Code: ErrCodeInvalidConfig, Message: errorMessages[ErrCodeInvalidConfig]}
)

// Error is returned by every Issuer and Verifier operation. Code tells the
// caller what to do next: ask for a new login on ErrCodeExpired, reject the
// request on ErrCodeInvalidSignature or ErrCodeAudienceMismatch.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the cause, e.g. ErrNumericDateOutOfRange.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code ErrorCode, cause error) error {
	msg := errorMessages[code]
	if msg == "" {
		msg = string(code)
	}
	return &Error{Code: code, Message: msg, Err: cause}
}
