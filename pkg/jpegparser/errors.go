package jpegparser

import "errors"

// Common errors
var (
	// ErrBrokenData means the bitstream contradicts its own declared lengths
	// or field ranges. Callers can skip the segment and carry on.
	ErrBrokenData = errors.New("broken data")
	// ErrNoScanFound means the walk ended without meeting an SOS marker.
	ErrNoScanFound = errors.New("no scan found")
	// ErrInvalidArgument means the call itself was wrong: empty buffer,
	// offset past the end, missing output storage.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Result is the outcome code of a parser call.
type Result int

const (
	ResultOK Result = iota
	ResultBrokenData
	ResultNoScanFound
	ResultError
)

// ResultOf maps an error returned by this package to its outcome code.
// Errors from elsewhere map to ResultError.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrBrokenData):
		return ResultBrokenData
	case errors.Is(err, ErrNoScanFound):
		return ResultNoScanFound
	default:
		return ResultError
	}
}

// String returns the result name
func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultBrokenData:
		return "broken-data"
	case ResultNoScanFound:
		return "no-scan-found"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}
