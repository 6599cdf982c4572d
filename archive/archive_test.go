package archive

import (
	"encoding/binary"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/format"
	"github.com/arloliu/casestack/labeled"
	"github.com/arloliu/casestack/section"
)

var codecs = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func masterArray(t *testing.T) labeled.Entry {
	t.Helper()

	data := make([]float64, 2*2*3)
	for i := range data {
		data[i] = 280 + float64(i)/4
	}
	a, err := labeled.NewArray("tas", []string{"scenario", "year", "x"}, []int{2, 2, 3}, data)
	require.NoError(t, err)

	sc, err := labeled.NewLabelVariable("scenario", []string{"scenario"}, []int{2}, []string{"low", "high"})
	require.NoError(t, err)
	sc.SetAttr("long_name", "Emission scenario")
	require.NoError(t, a.SetCoord(sc))

	yr, err := labeled.NewLabelVariable("year", []string{"year"}, []int{2}, []string{"2000", "2050"})
	require.NoError(t, err)
	require.NoError(t, a.SetCoord(yr))

	x, err := labeled.NewVariable("x", []string{"x"}, []int{3}, []float64{0, 1, 2})
	require.NoError(t, err)
	require.NoError(t, a.SetCoord(x))

	h, err := labeled.NewVariable("height", nil, nil, []float64{2})
	require.NoError(t, err)
	require.NoError(t, a.SetCoord(h))

	a.SetAttr("units", "K")
	a.SetAttr("scale", 1.5)

	return labeled.FromArray(a)
}

func masterDataset(t *testing.T) labeled.Entry {
	t.Helper()

	ds := labeled.NewDataset()
	sc, err := labeled.NewLabelVariable("scenario", []string{"scenario"}, []int{2}, []string{"RCP4.5", "RCP8.5"})
	require.NoError(t, err)
	require.NoError(t, ds.SetCoord(sc))
	tm, err := labeled.NewVariable("time", []string{"time"}, []int{2}, []float64{0, 1})
	require.NoError(t, err)
	require.NoError(t, ds.SetCoord(tm))

	tas, err := labeled.NewVariable("tas", []string{"scenario", "time"}, []int{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	tas.SetAttr("units", "K")
	require.NoError(t, ds.SetVar(tas))

	flag, err := labeled.NewLabelVariable("flag", []string{"scenario", "time"}, []int{2, 2}, []string{"ok", "", "gap", "ok"})
	require.NoError(t, err)
	require.NoError(t, ds.SetVar(flag))

	ds.SetAttr("title", "RCM test")

	return labeled.FromDataset(ds)
}

func TestRoundTrip(t *testing.T) {
	entries := map[string]labeled.Entry{
		"array":   masterArray(t),
		"dataset": masterDataset(t),
	}

	for name, entry := range entries {
		for _, ct := range codecs {
			for _, big := range []bool{false, true} {
				opts := []Option{WithCompression(ct), WithLittleEndian()}
				if big {
					opts = append(opts, WithBigEndian())
				}

				t.Run(name+"/"+ct.String(), func(t *testing.T) {
					data, err := Encode(entry, opts...)
					require.NoError(t, err)

					h, err := section.ParseHeader(data)
					require.NoError(t, err)
					require.Equal(t, big, h.Flag.IsBigEndian())
					require.Equal(t, ct, h.Flag.CompressionType())
					require.Equal(t, len(data), h.Size())

					got, err := Decode(data)
					require.NoError(t, err)
					require.Equal(t, entry, got)
				})
			}
		}
	}
}

func TestEncode_Defaults(t *testing.T) {
	data, err := Encode(masterArray(t))
	require.NoError(t, err)

	h, desc, err := Inspect(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, h.Flag.CompressionType())
	require.True(t, h.Flag.IsLittleEndian())
	require.Equal(t, section.KindArray, h.Flag.Kind)
	require.Equal(t, uint32(5), h.VariableCount)

	require.Equal(t, "array", desc.Kind)
	require.Equal(t, "tas", desc.Name)
	require.Equal(t, RoleData, desc.Variables[0].Role)
	require.Equal(t, []string{"scenario", "year", "x"}, desc.Variables[0].Dims)
	require.Equal(t, format.TypeVarString, desc.Variables[1].Encoding)
	require.Equal(t, "string", desc.Variables[1].DType)
	require.Equal(t, 12, desc.Variables[0].Count())
	require.Equal(t, 1, desc.Variables[4].Count())
}

func TestAttrs_JSONNumbers(t *testing.T) {
	a, err := labeled.NewArray("v", nil, nil, []float64{1})
	require.NoError(t, err)
	a.SetAttr("count", 3)
	a.SetAttr("levels", []int{1, 2})

	data, err := Encode(labeled.FromArray(a))
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, 3.0, got.Array().Attrs["count"])
	require.Equal(t, []any{1.0, 2.0}, got.Array().Attrs["levels"])
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(labeled.Entry{})
	require.ErrorIs(t, err, errs.ErrUnsupportedContainer)

	_, err = Encode(masterArray(t), WithCompression(format.CompressionType(0x9)))
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	bad := masterArray(t).Array()
	bad.Data = bad.Data[:3]
	_, err = Encode(labeled.FromArray(bad))
	require.ErrorIs(t, err, errs.ErrInvalidShape)
}

func TestDecode_Corruption(t *testing.T) {
	data, err := Encode(masterDataset(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	t.Run("checksum", func(t *testing.T) {
		b := append([]byte(nil), data...)
		b[len(b)-1] ^= 0xFF
		_, err := Decode(b)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(data[:len(data)-4])
		require.ErrorIs(t, err, errs.ErrTruncatedPayload)
	})

	t.Run("header", func(t *testing.T) {
		_, err := Decode(data[:10])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("magic", func(t *testing.T) {
		b := append([]byte(nil), data...)
		b[1] = 0x00
		_, err := Decode(b)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("descriptor", func(t *testing.T) {
		b := append([]byte(nil), data...)
		b[section.DescriptorOffset] = '['
		_, err := Decode(b)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("kind", func(t *testing.T) {
		b := append([]byte(nil), data...)
		b[2] = section.KindArray
		_, err := Decode(b)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}

func TestDecode_RawLength(t *testing.T) {
	for _, ct := range codecs {
		data, err := Encode(masterArray(t), WithCompression(ct))
		require.NoError(t, err)

		for _, raw := range []uint64{1 << 63, 1 << 40, 0} {
			b := append([]byte(nil), data...)
			binary.LittleEndian.PutUint64(b[16:24], raw)

			require.NotPanics(t, func() {
				_, err = Decode(b)
			}, "%s raw=%d", ct, raw)
			require.ErrorIs(t, err, errs.ErrTruncatedPayload, "%s raw=%d", ct, raw)
		}
	}
}

// rewriteDescriptor re-encodes the descriptor of an archive after mutate,
// keeping the payload and its checksum.
func rewriteDescriptor(t *testing.T, data []byte, mutate func(*Descriptor)) []byte {
	t.Helper()

	h, desc, err := Inspect(data)
	require.NoError(t, err)
	payload := data[section.DescriptorOffset+int(h.DescriptorLength):]

	mutate(&desc)
	descBytes, err := json.Marshal(desc)
	require.NoError(t, err)
	h.DescriptorLength = uint32(len(descBytes)) //nolint:gosec

	out := append(h.Bytes(), descBytes...)

	return append(out, payload...)
}

func TestDecode_DescriptorShape(t *testing.T) {
	data, err := Encode(masterDataset(t))
	require.NoError(t, err)

	// sanity: rewriting without changes still decodes
	_, err = Decode(rewriteDescriptor(t, data, func(*Descriptor) {}))
	require.NoError(t, err)

	tests := []struct {
		name  string
		shape []int
	}{
		{"overflow", []int{1 << 62, 4}},
		{"huge", []int{1 << 40}},
		{"negative", []int{-1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range 4 {
				b := rewriteDescriptor(t, data, func(d *Descriptor) {
					d.Variables[i].Shape = tt.shape
				})
				require.NotPanics(t, func() {
					_, err = Decode(b)
				})
				require.ErrorIs(t, err, errs.ErrTruncatedPayload, "variable %d", i)
			}
		})
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.cst")
	entry := masterDataset(t)

	require.NoError(t, WriteFile(path, entry, WithCompression(format.CompressionS2)))
	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, entry, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.cst"))
	require.Error(t, err)
}

func BenchmarkEncode(b *testing.B) {
	data := make([]float64, 64*64*16)
	for i := range data {
		data[i] = float64(i % 97)
	}
	a, _ := labeled.NewArray("tas", []string{"case", "x", "y"}, []int{16, 64, 64}, data)
	entry := labeled.FromArray(a)

	for _, ct := range codecs {
		b.Run(ct.String(), func(b *testing.B) {
			for b.Loop() {
				_, _ = Encode(entry, WithCompression(ct))
			}
		})
	}
}
