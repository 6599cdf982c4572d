package archive

import (
	"fmt"

	"github.com/arloliu/casestack/endian"
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/format"
	"github.com/arloliu/casestack/internal/options"
)

type config struct {
	compression format.CompressionType
	engine      endian.EndianEngine
}

// Option configures Encode.
type Option = options.Option[*config]

func defaultConfig() *config {
	return &config{
		compression: format.CompressionZstd,
		engine:      endian.GetLittleEndianEngine(),
	}
}

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		switch c {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = c
			return nil
		default:
			return fmt.Errorf("%w: compression %s", errs.ErrInvalidOption, c)
		}
	})
}

// WithLittleEndian writes numeric columns little-endian. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes numeric columns big-endian.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}
