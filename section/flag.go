package section

import (
	"fmt"

	"github.com/arloliu/casestack/endian"
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/format"
)

// Flag is the packed first word of the header.
type Flag struct {
	// Options packs the magic number and option bits.
	Options uint16
	// Kind is the container kind, KindArray or KindDataset.
	Kind uint8
	// Compression is the payload format.CompressionType.
	Compression uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewFlag returns a little-endian flag for kind with Zstd compression.
func NewFlag(kind uint8) Flag {
	return Flag{
		Options:     MagicArchiveV1,
		Kind:        kind,
		Compression: uint8(format.CompressionZstd),
	}
}

// IsLittleEndian reports whether the archive is little-endian.
func (f Flag) IsLittleEndian() bool {
	return f.Options&EndiannessMask == 0
}

// IsBigEndian reports whether the archive is big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithLittleEndian selects little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// SetCompression sets the payload compression.
func (f *Flag) SetCompression(c format.CompressionType) {
	f.Compression = uint8(c)
}

// CompressionType returns the payload compression.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// MagicNumber returns the magic number bits.
func (f Flag) MagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// GetEndianEngine returns the engine for the selected byte order.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Validate checks the magic number, reserved bits, kind and compression.
func (f Flag) Validate() error {
	if f.MagicNumber() != MagicArchiveV1 {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.MagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits 0x%04X", errs.ErrInvalidHeaderFlags, f.Options&ReservedBitsMask)
	}
	if f.Kind != KindArray && f.Kind != KindDataset {
		return fmt.Errorf("%w: container kind 0x%02X", errs.ErrInvalidHeaderFlags, f.Kind)
	}
	if _, ok := validCompressions[f.Compression]; !ok {
		return fmt.Errorf("%w: compression 0x%02X", errs.ErrInvalidHeaderFlags, f.Compression)
	}

	return nil
}
