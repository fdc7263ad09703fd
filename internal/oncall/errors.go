package oncall

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderError is a transport or deserialization failure on an outbound
// provider call. Op names the call site, Subject the schedule name or
// username the call was about (may be empty).
type ProviderError struct {
	Op      string
	Subject string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s failed for [%s]: %v", e.Op, e.Subject, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ScheduleNotFoundError reports that no schedule matched the requested name.
type ScheduleNotFoundError struct {
	Name string
}

func (e *ScheduleNotFoundError) Error() string {
	return fmt.Sprintf("no schedule found with the name [%s]", e.Name)
}

// TooManySchedulesError reports that a name matched more than one schedule.
// Ambiguity is never resolved by picking the first match.
type TooManySchedulesError struct {
	Name  string
	Found int
}

func (e *TooManySchedulesError) Error() string {
	return fmt.Sprintf("expected exactly one schedule for the name [%s], got [%d]", e.Name, e.Found)
}

// NoOnCallPersonError reports an empty on-call roster. This is an expected
// outcome, distinct from the provider being unreachable.
type NoOnCallPersonError struct{}

func (e *NoOnCallPersonError) Error() string {
	return "no one is currently on call"
}

// NoPhoneNumberError reports that the primary on-call person has no usable
// phone number configured.
type NoPhoneNumberError struct {
	Username string
}

func (e *NoPhoneNumberError) Error() string {
	return fmt.Sprintf("user [%s] has no phone number configured", e.Username)
}

// StatusCode maps a resolution error to the HTTP status the caller should
// see. Transport failures are server errors; ambiguous names are the
// caller's problem; an empty roster or an unreachable person is a teapot so
// monitoring can tell "nothing to act on" apart from "provider broken".
func StatusCode(err error) int {
	var (
		notFound *ScheduleNotFoundError
		tooMany  *TooManySchedulesError
		noOne    *NoOnCallPersonError
		noPhone  *NoPhoneNumberError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &tooMany):
		return http.StatusUnprocessableEntity
	case errors.As(err, &noOne), errors.As(err, &noPhone):
		return http.StatusTeapot
	default:
		return http.StatusInternalServerError
	}
}
