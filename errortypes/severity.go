package errortypes

// Severity represents how a decoding or request processing error affects the result.
type Severity int

const (
	// SeverityUnknown represents an unknown severity level.
	SeverityUnknown Severity = iota

	// SeverityFatal represents an error which prevents a value from being decoded or encoded.
	SeverityFatal

	// SeverityWarning represents a non-fatal error where the payload was still processed.
	SeverityWarning
)

func isFatal(err error) bool {
	s, ok := err.(Coder)
	return !ok || s.Severity() == SeverityFatal
}

// IsWarning returns true if an error is labeled with a Severity of SeverityWarning.
func IsWarning(err error) bool {
	s, ok := err.(Coder)
	return ok && s.Severity() == SeverityWarning
}

// ContainsFatalError checks if the error list contains a fatal error.
func ContainsFatalError(errors []error) bool {
	for _, err := range errors {
		if isFatal(err) {
			return true
		}
	}

	return false
}

// FatalOnly returns a new error list with only the fatal severity errors.
func FatalOnly(errs []error) []error {
	errsFatal := make([]error, 0, len(errs))

	for _, err := range errs {
		if isFatal(err) {
			errsFatal = append(errsFatal, err)
		}
	}

	return errsFatal
}
