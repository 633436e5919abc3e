package errortypes

import "fmt"

// BadInput should be used when a payload cannot be processed at all, e.g. it is not well-formed JSON.
//
// BadInputs will not be written to the app log, since it's not an actionable item for the hosts.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// TypeMismatch should be used when a present attribute carries a JSON kind that its field cannot hold,
// such as a number where a string is required.
type TypeMismatch struct {
	Field    string
	Expected string
	Actual   string
}

func (err *TypeMismatch) Error() string {
	return fmt.Sprintf("%s must be of type %s, got %s", err.Field, err.Expected, err.Actual)
}

func (err *TypeMismatch) Code() int {
	return TypeMismatchErrorCode
}

func (err *TypeMismatch) Severity() Severity {
	return SeverityFatal
}

// InvalidEnumCode should be used when an enumerated attribute carries a code outside the list defined by
// the OpenRTB specification. Value holds the offending literal exactly as it appeared on the wire.
//
// Unknown codes are never mapped to a catch-all value, since that would change their meaning.
type InvalidEnumCode struct {
	Field string
	Value string
}

func (err *InvalidEnumCode) Error() string {
	return fmt.Sprintf("%s has invalid code %s", err.Field, err.Value)
}

func (err *InvalidEnumCode) Code() int {
	return InvalidEnumCodeErrorCode
}

func (err *InvalidEnumCode) Severity() Severity {
	return SeverityFatal
}

// FailedToMarshal should be used when an in-memory value cannot be written to the wire.
type FailedToMarshal struct {
	Message string
}

func (err *FailedToMarshal) Error() string {
	return err.Message
}

func (err *FailedToMarshal) Code() int {
	return FailedToMarshalErrorCode
}

func (err *FailedToMarshal) Severity() Severity {
	return SeverityFatal
}

// RequestTooLarge should be used when a request body exceeds the configured max_request_size.
type RequestTooLarge struct {
	Message string
}

func (err *RequestTooLarge) Error() string {
	return err.Message
}

func (err *RequestTooLarge) Code() int {
	return RequestTooLargeErrorCode
}

func (err *RequestTooLarge) Severity() Severity {
	return SeverityFatal
}

// InvalidConfig flags a configuration value which prevents the server from starting.
type InvalidConfig struct {
	Message string
}

func (err *InvalidConfig) Error() string {
	return err.Message
}

func (err *InvalidConfig) Code() int {
	return InvalidConfigErrorCode
}

func (err *InvalidConfig) Severity() Severity {
	return SeverityFatal
}

// Warning is a generic non-fatal error.
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}
