// Package errs defines the errors returned by casestack packages.
//
// Every failure mode has a sentinel that can be matched with errors.Is. The
// failures that carry context about the offending case-tuple are returned as
// structured types (CoverageError, ShapeMismatchError, UnsupportedContainerError,
// UnimplementedPathError) which unwrap to their sentinel, so both of these work:
//
//	if errors.Is(err, errs.ErrCoverage) { ... }
//
//	var cov *errs.CoverageError
//	if errors.As(err, &cov) {
//	    fmt.Println("missing", cov.Missing)
//	}
package errs

import "errors"

// Assembly errors.
var (
	// ErrCoverage indicates the case-data mapping is missing at least one case-tuple.
	ErrCoverage = errors.New("case-data mapping does not cover the case product")
	// ErrUnsupportedContainer indicates an entry is neither a single array nor a dataset.
	ErrUnsupportedContainer = errors.New("unsupported container type")
	// ErrUnimplemented indicates an assembly path that is deliberately not supported.
	ErrUnimplemented = errors.New("assembly path not implemented")
	// ErrShapeMismatch indicates per-case entries disagree in non-case dimensionality.
	ErrShapeMismatch = errors.New("per-case shape mismatch")
	// ErrMissingField indicates a requested case-varying field is absent from an entry.
	ErrMissingField = errors.New("field missing from entry")
	// ErrDimensionConflict indicates a case shortname collides with an existing dimension or coordinate.
	ErrDimensionConflict = errors.New("case dimension conflicts with existing dimension")
)

// Case space errors.
var (
	ErrEmptySpace         = errors.New("case space must have at least one case")
	ErrInvalidCaseName    = errors.New("invalid case shortname")
	ErrEmptyCaseValues    = errors.New("case must have at least one value")
	ErrDuplicateCase      = errors.New("duplicate case shortname")
	ErrDuplicateCaseValue = errors.New("duplicate case value")
	ErrInvalidCaseValue   = errors.New("invalid case value")
	ErrTupleLength        = errors.New("case-tuple length does not match case space")
	ErrUnknownCaseValue   = errors.New("unknown case value")
	ErrDuplicateTuple     = errors.New("duplicate case-tuple")
)

// Experiment configuration errors.
var (
	ErrInvalidExperiment = errors.New("invalid experiment")
)

// Data model errors.
var (
	ErrInvalidShape  = errors.New("invalid shape")
	ErrInvalidOption = errors.New("invalid option")
)

// Archive errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrTruncatedPayload   = errors.New("truncated payload")
	ErrChecksumMismatch   = errors.New("payload checksum mismatch")
)
