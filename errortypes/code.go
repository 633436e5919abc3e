package errortypes

import "errors"

// Defines numeric codes for well-known errors.
const (
	UnknownErrorCode  = 999
	BadInputErrorCode = iota
	TypeMismatchErrorCode
	InvalidEnumCodeErrorCode
	FailedToMarshalErrorCode
	RequestTooLargeErrorCode
	InvalidConfigErrorCode
)

// Coder provides an error code with severity.
type Coder interface {
	Code() int
	Severity() Severity
}

// ReadCode returns the code of the first Coder in err's chain, or UnknownErrorCode if there is none.
func ReadCode(err error) int {
	var coder Coder
	if errors.As(err, &coder) {
		return coder.Code()
	}
	return UnknownErrorCode
}

// Defines numeric codes for well-known warnings.
const (
	UnknownWarningCode       = 10999
	IgnoredConfigWarningCode = iota + 10000
)
