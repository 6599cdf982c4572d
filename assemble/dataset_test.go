package assemble

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/casestack/casemap"
	"github.com/arloliu/casestack/cases"
	"github.com/arloliu/casestack/config"
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/labeled"
)

// caseDataset builds one per-case dataset: a time coordinate, a numeric
// field tas, a categorical field flag and a scalar height.
func caseDataset(t *testing.T, v float64, flag string) *labeled.Dataset {
	t.Helper()

	ds := labeled.NewDataset()
	tm, err := labeled.NewVariable("time", []string{"time"}, []int{2}, []float64{0, 1})
	require.NoError(t, err)
	tm.SetAttr("units", "days since 2000-01-01")
	require.NoError(t, ds.SetCoord(tm))

	tas, err := labeled.NewVariable("tas", []string{"time"}, []int{2}, []float64{v, v + 0.5})
	require.NoError(t, err)
	tas.SetAttr("units", "K")
	require.NoError(t, ds.SetVar(tas))

	fl, err := labeled.NewLabelVariable("flag", []string{"time"}, []int{2}, []string{flag, flag})
	require.NoError(t, err)
	require.NoError(t, ds.SetVar(fl))

	h, err := labeled.NewVariable("height", nil, nil, []float64{2})
	require.NoError(t, err)
	require.NoError(t, ds.SetVar(h))

	ds.SetAttr("title", "regional run")

	return ds
}

func datasetMap(t *testing.T) *casemap.Map {
	t.Helper()

	m := casemap.New()
	m.MustPut(cases.Tuple{"low", "2000"}, labeled.FromDataset(caseDataset(t, 11, "a")))
	m.MustPut(cases.Tuple{"low", "2050"}, labeled.FromDataset(caseDataset(t, 12, "b")))
	m.MustPut(cases.Tuple{"high", "2000"}, labeled.FromDataset(caseDataset(t, 21, "c")))
	m.MustPut(cases.Tuple{"high", "2050"}, labeled.FromDataset(caseDataset(t, 22, "d")))

	return m
}

func TestAssemble_Dataset(t *testing.T) {
	asm, err := New()
	require.NoError(t, err)

	entry, err := asm.Assemble(testSpace(t), datasetMap(t), "tas", "flag", "time")
	require.NoError(t, err)
	require.Equal(t, labeled.KindDataset, entry.Kind())

	master := entry.Dataset()
	require.Equal(t, []string{"scenario", "year", "time"}, master.Coords.Names())
	require.Equal(t, []string{"tas", "flag", "height"}, master.Vars.Names())

	tas, _ := master.Vars.Get("tas")
	require.Equal(t, []string{"scenario", "year", "time"}, tas.Dims)
	require.Equal(t, []int{2, 2, 2}, tas.Shape)
	if diff := cmp.Diff([]float64{11, 11.5, 12, 12.5, 21, 21.5, 22, 22.5}, tas.Values); diff != "" {
		t.Fatalf("tas mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "K", tas.Attrs["units"])

	flag, _ := master.Vars.Get("flag")
	require.Equal(t, labeled.String, flag.DType())
	require.Equal(t, []string{"a", "a", "b", "b", "c", "c", "d", "d"}, flag.Labels)

	// unrequested variables are copied from the representative
	h, _ := master.Vars.Get("height")
	require.Empty(t, h.Dims)
	require.Equal(t, []float64{2}, h.Values)

	tm, _ := master.Coords.Get("time")
	require.Equal(t, []float64{0, 1}, tm.Values)
	require.Equal(t, "days since 2000-01-01", tm.Attrs["units"])

	sc, _ := master.Coords.Get("scenario")
	require.Equal(t, []string{"low", "high"}, sc.Labels)
	require.Equal(t, "Emission scenario", sc.Attrs[DefaultLongNameAttr])

	require.Equal(t, labeled.Attrs{"title": "regional run"}, master.Attrs)

	dims, err := master.Dims()
	require.NoError(t, err)
	require.Equal(t, map[string]int{"scenario": 2, "year": 2, "time": 2}, dims)
}

func TestAssemble_DatasetNoFields(t *testing.T) {
	asm, err := New()
	require.NoError(t, err)

	entry, err := asm.Assemble(testSpace(t), datasetMap(t))
	require.NoError(t, err)

	tas, _ := entry.Dataset().Vars.Get("tas")
	require.Equal(t, []string{"time"}, tas.Dims)
	require.Equal(t, []float64{11, 11.5}, tas.Values)
}

func TestAssemble_DatasetMissingField(t *testing.T) {
	asm, err := New()
	require.NoError(t, err)

	m := datasetMap(t)
	e, _ := m.Lookup(cases.Tuple{"high", "2050"})
	stripped := labeled.NewDataset()
	for _, v := range e.Dataset().Coords.All() {
		require.NoError(t, stripped.SetCoord(v))
	}
	broken := casemap.New()
	for _, tup := range m.Tuples() {
		if tup.Equal(cases.Tuple{"high", "2050"}) {
			broken.MustPut(tup, labeled.FromDataset(stripped))
			continue
		}
		entry, _ := m.Lookup(tup)
		broken.MustPut(tup, entry)
	}

	_, err = asm.Assemble(testSpace(t), broken, "tas")
	require.ErrorIs(t, err, errs.ErrMissingField)
	require.Contains(t, err.Error(), "(high, 2050)")
}

func TestAssemble_DatasetUnknownFieldsSkipped(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	asm, err := New(WithLogger(zap.New(core)))
	require.NoError(t, err)

	entry, err := asm.Assemble(testSpace(t), datasetMap(t), "pr", "tas")
	require.NoError(t, err)

	tas, _ := entry.Dataset().Vars.Get("tas")
	require.Equal(t, []string{"scenario", "year", "time"}, tas.Dims)
	require.False(t, entry.Dataset().Vars.Has("pr"))

	skipped := logs.FilterMessage("Requested field not in entry, skipping").All()
	require.Len(t, skipped, 1)
	require.Equal(t, "pr", skipped[0].ContextMap()["field"])
}

func TestAssemble_DatasetExperimentFields(t *testing.T) {
	exp, err := config.Parse([]byte(`
name: regional
cases:
  - shortname: scenario
    values: [low, high]
  - shortname: year
    values: [2000, 2050]
fields:
  - name: temp
    fieldnames: [tas]
  - name: quality
    fieldnames: [flag]
`))
	require.NoError(t, err)
	require.Equal(t, []string{"temp", "tas", "quality", "flag"}, exp.FieldNames())

	space, err := exp.Space()
	require.NoError(t, err)

	asm, err := New()
	require.NoError(t, err)

	entry, err := asm.Assemble(space, datasetMap(t), exp.FieldNames()...)
	require.NoError(t, err)

	master := entry.Dataset()
	tas, _ := master.Vars.Get("tas")
	require.Equal(t, []int{2, 2, 2}, tas.Shape)
	flag, _ := master.Vars.Get("flag")
	require.Equal(t, []string{"a", "a", "b", "b", "c", "c", "d", "d"}, flag.Labels)
	h, _ := master.Vars.Get("height")
	require.Empty(t, h.Dims)
}

func TestAssemble_DatasetFieldShape(t *testing.T) {
	m := casemap.New()
	space := testSpace(t)
	for tup := range space.Products() {
		ds := caseDataset(t, 1, "x")
		if tup.Equal(cases.Tuple{"high", "2000"}) {
			ds = labeled.NewDataset()
			tas, err := labeled.NewVariable("tas", []string{"lat"}, []int{2}, []float64{0, 0})
			require.NoError(t, err)
			require.NoError(t, ds.SetVar(tas))
		}
		m.MustPut(tup, labeled.FromDataset(ds))
	}

	asm, err := New(WithWorkers(2))
	require.NoError(t, err)

	_, err = asm.Assemble(space, m, "tas")
	var sme *errs.ShapeMismatchError
	require.ErrorAs(t, err, &sme)
	require.Equal(t, "tas", sme.Field)
	require.Equal(t, []string{"high", "2000"}, sme.Tuple)
	require.Equal(t, []string{"time"}, sme.WantDims)
	require.Equal(t, []string{"lat"}, sme.GotDims)
}

func TestAssemble_DatasetConflict(t *testing.T) {
	space, err := cases.NewSpace(cases.MustCase("height", "", "a"))
	require.NoError(t, err)

	m := casemap.New()
	m.MustPut(cases.Tuple{"a"}, labeled.FromDataset(caseDataset(t, 1, "x")))

	asm, err := New()
	require.NoError(t, err)

	_, err = asm.Assemble(space, m, "tas")
	require.ErrorIs(t, err, errs.ErrDimensionConflict)
}
