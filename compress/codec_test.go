package compress

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/casestack/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func testPayloads() map[string][]byte {
	rng := rand.New(rand.NewPCG(1, 2))
	random := make([]byte, 4096)
	for i := range random {
		random[i] = byte(rng.IntN(256))
	}

	return map[string][]byte{
		"empty":      {},
		"single":     {0x42},
		"repetitive": bytes.Repeat([]byte("scenario=high;year=2050;"), 200),
		"random":     random,
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, payload := range testPayloads() {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(payload)
				require.NoError(t, err)

				raw, err := codec.Decompress(packed, len(payload))
				require.NoError(t, err)
				require.Len(t, raw, len(payload))
				if len(payload) > 0 {
					require.Equal(t, payload, raw)
				}
			})
		}
	}
}

func TestCodecs_Compresses(t *testing.T) {
	payload := bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 1024)

	for _, ct := range allTypes[1:] {
		codec, err := CreateCodec(ct, "payload")
		require.NoError(t, err)

		packed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(packed), len(payload)/4, ct.String())
	}
}

func TestCodecs_SizeMismatch(t *testing.T) {
	payload := bytes.Repeat([]byte("abc"), 100)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(payload)
		require.NoError(t, err)

		_, err = codec.Decompress(packed, len(payload)+1)
		require.Error(t, err, ct.String())
	}
}

func TestCodecs_Corrupt(t *testing.T) {
	garbage := []byte{0x05, 0xff, 0xff}

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage, 64)
		require.Error(t, err, ct.String())
	}
}

func TestCodecs_OversizedTarget(t *testing.T) {
	payload := bytes.Repeat([]byte("abc"), 100)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(payload)
		require.NoError(t, err)

		for _, size := range []int{1 << 40, -1} {
			require.NotPanics(t, func() {
				_, err = codec.Decompress(packed, size)
			}, "%s size=%d", ct, size)
			require.Error(t, err, "%s size=%d", ct, size)
		}
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x9))
	require.Error(t, err)

	_, err = CreateCodec(format.CompressionType(0x9), "payload")
	require.ErrorContains(t, err, "invalid payload compression")
}

func BenchmarkCodecs(b *testing.B) {
	payload := bytes.Repeat([]byte("280.15,281.40,279.95;"), 4096)

	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		packed, _ := codec.Compress(payload)

		b.Run(ct.String()+"/compress", func(b *testing.B) {
			for b.Loop() {
				_, _ = codec.Compress(payload)
			}
		})
		b.Run(ct.String()+"/decompress", func(b *testing.B) {
			for b.Loop() {
				_, _ = codec.Decompress(packed, len(payload))
			}
		})
	}
}
