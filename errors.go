package ephem

import "errors"

// The error taxonomy. Every failure surfaced by the engine wraps exactly one
// of these sentinels, so callers branch with errors.Is and still get the
// field/offset detail in the message.
var (
	// ErrInvalidConfig reports a validation failure at construction time.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrKernelLoad reports a parse error or unsupported format in a kernel file.
	ErrKernelLoad = errors.New("kernel load failed")
	// ErrTimeConversion reports a UTC epoch the leap-second table does not cover.
	ErrTimeConversion = errors.New("time conversion failed")
	// ErrEopOutOfRange reports a UT1 request outside the EOP table.
	ErrEopOutOfRange = errors.New("epoch outside EOP table range")
	// ErrEpochOutOfRange reports a TDB epoch outside every candidate segment.
	ErrEpochOutOfRange = errors.New("epoch outside segment coverage")
	// ErrNoSegment reports a body chain that cannot be closed to the SSB.
	ErrNoSegment = errors.New("no segment closes the chain")
	// ErrUnsupportedQuery reports a frame or data type the reader has not indexed.
	ErrUnsupportedQuery = errors.New("unsupported query")
	// ErrInvalidLocation reports geographic parameters out of physical range.
	ErrInvalidLocation = errors.New("invalid geographic location")
	// ErrNoConvergence reports a root search that exhausted its iteration budget.
	ErrNoConvergence = errors.New("search did not converge")
	// ErrInvalidSearchConfig reports a search asked of a body it cannot process.
	ErrInvalidSearchConfig = errors.New("invalid search configuration")
)
