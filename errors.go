package goldencheetah

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for local precondition failures.
var (
	// ErrAthleteNotConfigured is returned when a per-athlete operation is
	// called before Client.Athlete is set.
	ErrAthleteNotConfigured = errors.New("goldencheetah: athlete not configured")
	// ErrEmptyActivityIndex is returned when the last activity is requested
	// for an athlete with no recorded activities.
	ErrEmptyActivityIndex = errors.New("goldencheetah: athlete has no recorded activities")
)

// ServerUnavailableError means the server could not be reached at all:
// connection refused, DNS failure, malformed host, timeout.
type ServerUnavailableError struct {
	Endpoint string
	Err      error
}

func (e *ServerUnavailableError) Error() string {
	return fmt.Sprintf("goldencheetah: not running at %q: %v", e.Endpoint, e.Err)
}

func (e *ServerUnavailableError) Unwrap() error { return e.Err }

// AthleteNotFoundError means the server does not recognize the athlete name.
type AthleteNotFoundError struct {
	Athlete string
}

func (e *AthleteNotFoundError) Error() string {
	return fmt.Sprintf("goldencheetah: athlete %q does not exist", e.Athlete)
}

// ActivityNotFoundError means the requested activity filename does not exist
// for the athlete.
type ActivityNotFoundError struct {
	Filename string
}

func (e *ActivityNotFoundError) Error() string {
	return fmt.Sprintf("goldencheetah: activity %q does not exist", e.Filename)
}

// ErrorKind identifies a known in-band error signature. The server reports
// errors as plain text in an HTTP 200 body rather than via status codes.
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindUnknownAthlete
	ErrorKindFileNotFound
)

// Classifier inspects a raw response body for in-band error signatures. The
// second return value carries the signature's detail: the athlete name for
// ErrorKindUnknownAthlete, empty otherwise. Swap the classifier on a Client
// for server builds whose error wording differs.
type Classifier func(body string) (ErrorKind, string)

const (
	unknownAthletePrefix = "unknown athlete "
	fileNotFoundBody     = "file not found"
)

// DefaultClassifier matches the error bodies produced by current server builds.
func DefaultClassifier(body string) (ErrorKind, string) {
	if name, ok := strings.CutPrefix(body, unknownAthletePrefix); ok {
		return ErrorKindUnknownAthlete, name
	}
	if body == fileNotFoundBody {
		return ErrorKindFileNotFound, ""
	}
	return ErrorKindNone, ""
}
