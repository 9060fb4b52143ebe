package reasoner

import "fmt"

// AuthError indicates the reasoning service rejected the credential.
type AuthError struct {
	Provider string
	Detail   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s rejected credential: %s", e.Provider, e.Detail)
}

// TransportError indicates the reasoning service could not be reached at
// all, as opposed to a reached-but-erroring endpoint.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError indicates the reasoning service was reached but returned a
// non-success status for reasons other than auth, or an unusable success
// body. StatusCode keeps 429 and 5xx distinguishable for callers.
type ServiceError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Detail)
}
