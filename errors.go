package board

import (
	"errors"
	"fmt"
)

// ErrDecode is the sentinel matched by errors.Is for any DecodeError.
var ErrDecode = errors.New("board: cannot decode document")

// ErrFetch is the sentinel matched by errors.Is for any FetchError.
var ErrFetch = errors.New("board: background fetch failed")

// DecodeError reports malformed or truncated persisted document bytes.
// Decoding never yields a partially-built document alongside one of
// these. The controller recovers by starting from a fresh document, so
// a DecodeError is never fatal in normal operation.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("board: cannot decode document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("board: cannot decode document: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) true for every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// FetchError reports a failed background retrieval or image decode.
// The fetch pipeline swallows these (the background simply stays
// absent); they surface only in logs and to direct Fetcher callers.
type FetchError struct {
	Ref Background
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("board: background fetch failed: %s: %v", e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) true for every FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }
