package quill

import "errors"

// Sentinel errors reported by the drawing engine. Operations fail
// synchronously; nothing is retried and nothing recovers silently.
var (
	// ErrNoCurrentPoint is returned when a path segment operation requires
	// a current point that does not exist (for example LineTo right after
	// a paint operation consumed the path).
	ErrNoCurrentPoint = errors.New("quill: no current point")

	// ErrInvalidStyle is returned when an unrecognized enum value is passed
	// to a style setter. The previous style is left unchanged.
	ErrInvalidStyle = errors.New("quill: invalid style value")

	// ErrUnsupported is returned for capabilities a sink (or the engine
	// itself) does not implement. Unimplemented operations always surface
	// this error instead of silently doing nothing.
	ErrUnsupported = errors.New("quill: operation not supported")

	// ErrStackUnderflow is returned by RestoreState when there is no
	// matching SaveState.
	ErrStackUnderflow = errors.New("quill: state stack underflow")

	// ErrStackImbalance is reported by Close when a drawing session ends
	// with unmatched SaveState calls.
	ErrStackImbalance = errors.New("quill: unbalanced save/restore state stack")
)
