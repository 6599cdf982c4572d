// Package assemble builds master containers from per-case entries.
//
// An Assembler stacks the entries of every case-tuple of a cases.Space into a
// single container with one new leading dimension per case. Each case becomes
// a label coordinate named after its shortname, carrying its longname under
// the long-name attribute, and the representative entry (the one at the first
// canonical tuple) supplies coordinates and attributes for the master.
//
// Basic usage:
//
//	asm, err := assemble.New(assemble.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	master, err := asm.Assemble(space, casemap, "tas", "pr")
//
// Single-array entries are stacked as a whole. Multi-variable entries stack the
// requested data variables and copy everything else once from the
// representative.
package assemble
