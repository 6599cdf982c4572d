package cases

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/casestack/errs"
)

func TestNewCase(t *testing.T) {
	c, err := NewCase("scenario", "Climate Scenario", "RCP4.5", "RCP8.5")
	require.NoError(t, err)
	require.Equal(t, "scenario", c.Shortname)
	require.Equal(t, "Climate Scenario", c.Longname)
	require.Equal(t, []string{"RCP4.5", "RCP8.5"}, c.Values())
	require.Equal(t, 2, c.Len())

	i, ok := c.IndexOf("RCP8.5")
	require.True(t, ok)
	require.Equal(t, 1, i)

	_, ok = c.IndexOf("RCP2.6")
	require.False(t, ok)

	// Values returns a copy
	vals := c.Values()
	vals[0] = "mutated"
	require.Equal(t, "RCP4.5", c.Value(0))
}

func TestNewCase_Errors(t *testing.T) {
	_, err := NewCase("", "no name", "x")
	require.ErrorIs(t, err, errs.ErrInvalidCaseName)

	_, err = NewCase("empty", "no values")
	require.ErrorIs(t, err, errs.ErrEmptyCaseValues)

	_, err = NewCase("dup", "duplicates", "x", "y", "x")
	require.ErrorIs(t, err, errs.ErrDuplicateCaseValue)
}

func TestNewCase_InputNotAliased(t *testing.T) {
	vals := []string{"a", "b"}
	c, err := NewCase("c", "", vals...)
	require.NoError(t, err)

	vals[0] = "changed"
	require.Equal(t, "a", c.Value(0))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"bare string is one value", "day", []string{"day"}},
		{"long bare string is one value", "Temperature Climate Data", []string{"Temperature Climate Data"}},
		{"empty string is one value", "", []string{""}},
		{"string slice", []string{"a", "b"}, []string{"a", "b"}},
		{"any slice", []any{"a", 1, 2.5, true}, []string{"a", "1", "2.5", "true"}},
		{"int scalar", 2050, []string{"2050"}},
		{"int64 scalar", int64(-3), []string{"-3"}},
		{"uint scalar", uint16(7), []string{"7"}},
		{"float scalar", 0.44, []string{"0.44"}},
		{"bool scalar", false, []string{"false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	for _, input := range []any{nil, []any{[]any{"nested"}}, map[string]any{"a": 1}, struct{}{}} {
		_, err := Normalize(input)
		require.ErrorIs(t, err, errs.ErrInvalidCaseValue, "input %#v", input)
	}
}

func TestNewCaseFromAny_BareString(t *testing.T) {
	c, err := NewCaseFromAny("frequency", "Frequency Time Unit", "day")
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	require.Equal(t, []string{"day"}, c.Values())

	_, err = NewCaseFromAny("bad", "", nil)
	require.ErrorIs(t, err, errs.ErrInvalidCaseValue)
}

func TestMustCase_Panics(t *testing.T) {
	require.Panics(t, func() { MustCase("", "") })
}
