// Package casestack assembles per-case labeled data into a single master whose
// leading axes are categorical case dimensions.
//
// An experiment is a list of cases, each an ordered list of values. Their
// Cartesian product, enumerated case-major with the last case varying fastest,
// is the case space. Given a mapping from every case-tuple to a labeled entry
// (a single array or a multi-variable dataset), the assembler stacks the
// entries into one master of shape (ncase_0, ..., ncase_k-1, *leaf_shape),
// labels each case axis with a coordinate and carries attributes over.
//
// # Basic Usage
//
//	space, _ := cases.NewSpace(
//	    cases.MustCase("scenario", "Emission scenario", "low", "high"),
//	    cases.MustCase("year", "Projection year", "2030", "2050"),
//	)
//
//	m := casemap.New()
//	m.MustPut(cases.Tuple{"low", "2030"}, labeled.FromArray(lowNear))
//	// ... one entry per tuple
//
//	master, err := casestack.Assemble(space, m)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Datasets stack only the requested fields; the remaining variables are copied
// from the entry of the first case-tuple:
//
//	master, err := casestack.Assemble(space, m, "tas", "pr")
//
// # Persistence
//
// A master can be written to a self-describing binary archive:
//
//	data, err := casestack.Encode(master, archive.WithCompression(format.CompressionZstd))
//	restored, err := casestack.Decode(data)
//
// # Errors
//
// All failures wrap a sentinel in package errs, so callers branch with
// errors.Is and extract detail with errors.As:
//
//	var cov *errs.CoverageError
//	if errors.As(err, &cov) {
//	    fmt.Println("missing", cov.Missing)
//	}
package casestack

import (
	"github.com/arloliu/casestack/archive"
	"github.com/arloliu/casestack/assemble"
	"github.com/arloliu/casestack/cases"
	"github.com/arloliu/casestack/config"
	"github.com/arloliu/casestack/labeled"
)

// Assemble builds the master for space from src with default settings.
//
// For datasets, fields names the data variables to stack. See
// assemble.Assembler.Assemble for the full contract.
func Assemble(space *cases.Space, src assemble.Source, fields ...string) (labeled.Entry, error) {
	asm, err := assemble.New()
	if err != nil {
		return labeled.Entry{}, err
	}

	return asm.Assemble(space, src, fields...)
}

// NewAssembler creates a reusable assembler.
//
// Available options:
//   - assemble.WithLogger(*zap.Logger)
//   - assemble.WithWorkers(n)
//   - assemble.WithRegisterer(prometheus.Registerer)
//   - assemble.WithAggregation(assemble.AggregateStack)
//   - assemble.WithLongNameAttr(key)
func NewAssembler(opts ...assemble.Option) (*assemble.Assembler, error) {
	return assemble.New(opts...)
}

// Encode serializes an entry into an archive.
func Encode(entry labeled.Entry, opts ...archive.Option) ([]byte, error) {
	return archive.Encode(entry, opts...)
}

// Decode restores an entry from an archive produced by Encode.
func Decode(data []byte) (labeled.Entry, error) {
	return archive.Decode(data)
}

// LoadSpace reads an experiment YAML file and returns its case space.
func LoadSpace(path string) (*cases.Space, error) {
	exp, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return exp.Space()
}
