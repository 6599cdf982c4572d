// Package labeled provides the labeled N-dimensional containers assembled by casestack.
//
// Two container kinds exist and are carried behind the Entry sum type:
//
//   - Array: a single numeric buffer with named dimensions, coordinate
//     variables and attributes.
//   - Dataset: a named collection of data variables and coordinate variables
//     sharing named dimensions, with global attributes.
//
// All buffers are flat and row-major ("C" order): the last dimension varies
// fastest. A Variable holds either numeric data (Values) or categorical text
// data (Labels), never both.
package labeled
