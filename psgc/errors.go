package psgc

import "errors"

var (
	// ErrInvalidCode is returned for codes that are empty, contain no
	// digits, or normalize to the all-zero "no code" value.
	ErrInvalidCode = errors.New("invalid geographic code")

	// ErrUnclassifiableCode indicates a 9-digit code matching none of
	// the level shapes. The shapes are collectively exhaustive, so any
	// hit is a data-quality bug, not a condition to skip silently.
	ErrUnclassifiableCode = errors.New("unclassifiable geographic code")

	// ErrInvalidAncestorRequest is returned when the requested parent
	// level is not a strict ancestor of the code's own level.
	ErrInvalidAncestorRequest = errors.New("requested level is not a strict ancestor")
)

// RejectReason explains why the classifier excluded a record
type RejectReason string

const (
	ReasonMissingCode        RejectReason = "missing_code"
	ReasonMissingName        RejectReason = "missing_name"
	ReasonInvalidCode        RejectReason = "invalid_code"
	ReasonUnclassifiableCode RejectReason = "unclassifiable_code"
)

// Rejection carries enough context (code, name, source index) to find
// the offending record in the original file
type Rejection struct {
	Reason      RejectReason `json:"reason"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	SourceIndex int          `json:"source_index"`
}
