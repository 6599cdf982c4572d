package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arloliu/casestack/archive"
	"github.com/arloliu/casestack/format"
	"github.com/arloliu/casestack/labeled"
)

const experimentYAML = `
name: Demo
cases:
  - shortname: scenario
    longname: Climate Scenario
    values: [low, high]
  - shortname: year
    values: [2030, 2050]
fields:
  - name: temp
    fieldnames: [tas]
`

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	logger = zap.NewNop()
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return cmd, buf
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestRunSpace(t *testing.T) {
	path := writeFile(t, "experiment.yaml", []byte(experimentYAML))

	cmd, buf := newTestCmd()
	require.NoError(t, runSpace(cmd, []string{path}))

	out := buf.String()
	require.Contains(t, out, "experiment: Demo")
	require.Contains(t, out, "Climate Scenario")
	require.Contains(t, out, "[low, high]")
	require.Contains(t, out, "tuples: 4")
	require.Contains(t, out, "fields: temp, tas")
	require.NotContains(t, out, "(low, 2030)")

	listAll = true
	defer func() { listAll = false }()

	cmd, buf = newTestCmd()
	require.NoError(t, runSpace(cmd, []string{path}))
	out = buf.String()
	require.Contains(t, out, "     0 (low, 2030)")
	require.Contains(t, out, "     3 (high, 2050)")
	require.Less(t, bytes.Index(buf.Bytes(), []byte("(low, 2050)")), bytes.Index(buf.Bytes(), []byte("(high, 2030)")))
}

func TestRunSpace_Errors(t *testing.T) {
	cmd, _ := newTestCmd()
	require.Error(t, runSpace(cmd, []string{filepath.Join(t.TempDir(), "missing.yaml")}))

	path := writeFile(t, "bad.yaml", []byte("name: bad\ncases: []\n"))
	require.Error(t, runSpace(cmd, []string{path}))
}

func TestRunInspect(t *testing.T) {
	a, err := labeled.NewArray("tas", []string{"scenario", "x"}, []int{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	a.SetAttr("units", "K")
	sc, err := labeled.NewLabelVariable("scenario", []string{"scenario"}, []int{2}, []string{"low", "high"})
	require.NoError(t, err)
	require.NoError(t, a.SetCoord(sc))

	path := filepath.Join(t.TempDir(), "master.cst")
	require.NoError(t, archive.WriteFile(path, labeled.FromArray(a), archive.WithCompression(format.CompressionS2)))

	cmd, buf := newTestCmd()
	require.NoError(t, runInspect(cmd, []string{path}))

	out := buf.String()
	require.Contains(t, out, "kind: array")
	require.Contains(t, out, "name: tas")
	require.Contains(t, out, "compression: S2")
	require.Contains(t, out, "@units = K")
	require.Contains(t, out, "scenario")

	bad := writeFile(t, "bad.cst", []byte("not an archive"))
	require.Error(t, runInspect(cmd, []string{bad}))
}

func TestRootCommand(t *testing.T) {
	path := writeFile(t, "experiment.yaml", []byte(experimentYAML))

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"space", path})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, buf.String(), "tuples: 4")
}
