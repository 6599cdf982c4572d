package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructuredErrors_Unwrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "coverage",
			err:      &CoverageError{Missing: []string{"low", "2050"}},
			sentinel: ErrCoverage,
			contains: "(low, 2050)",
		},
		{
			name:     "shape mismatch",
			err:      &ShapeMismatchError{Tuple: []string{"high"}, Field: "tas", Want: []int{3, 3}, Got: []int{3, 4}},
			sentinel: ErrShapeMismatch,
			contains: `field "tas"`,
		},
		{
			name:     "unsupported container",
			err:      &UnsupportedContainerError{Kind: "invalid"},
			sentinel: ErrUnsupportedContainer,
			contains: "invalid",
		},
		{
			name:     "unimplemented",
			err:      &UnimplementedPathError{Path: "dataset/outer"},
			sentinel: ErrUnimplemented,
			contains: "dataset/outer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("assemble: %w", tt.err)
			require.ErrorIs(t, wrapped, tt.sentinel)
			require.Contains(t, wrapped.Error(), tt.contains)
		})
	}
}

func TestCoverageError_As(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &CoverageError{Missing: []string{"a", "b"}})

	var cov *CoverageError
	require.True(t, errors.As(err, &cov))
	require.Equal(t, []string{"a", "b"}, cov.Missing)
}
