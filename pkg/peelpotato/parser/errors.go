package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidSyntax indicates the spec string matches none of the accepted
// grammar forms.
var ErrInvalidSyntax = errors.New("invalid range syntax")

// ErrEmptyRange indicates a valid spec resolved to zero data rows, e.g.
// after excluding the header row of a one-row extent.
var ErrEmptyRange = errors.New("range resolves to zero data rows")

// ErrOverlappingRanges indicates two resolved ranges of one resolution
// intersect.
var ErrOverlappingRanges = errors.New("resolved ranges overlap")

// ErrUnresolvedExtent indicates the caller supplied an invalid or empty
// used extent (no data on the sheet).
var ErrUnresolvedExtent = errors.New("used extent is empty or invalid")

// ResolveError reports a failed resolution, carrying the full spec and
// the offending token when one can be pinpointed.
type ResolveError struct {
	Spec  string
	Token string
	Err   error
}

func (e *ResolveError) Error() string {
	if e.Token != "" && e.Token != e.Spec {
		return fmt.Sprintf("cannot resolve %q (token %q): %v", e.Spec, e.Token, e.Err)
	}
	return fmt.Sprintf("cannot resolve %q: %v", e.Spec, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func resolveErr(spec, token string, err error) *ResolveError {
	return &ResolveError{Spec: spec, Token: token, Err: err}
}
