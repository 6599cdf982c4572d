package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/casestack/errs"
)

// Header is the fixed-size section at the start of an archive.
type Header struct {
	Flag             Flag   // byte offset 0-3
	VariableCount    uint32 // byte offset 4-7
	DescriptorLength uint32 // byte offset 8-11
	PayloadLength    uint32 // byte offset 12-15
	RawLength        uint64 // byte offset 16-23
	Checksum         uint32 // byte offset 24-27
}

// NewHeader creates a header for kind. Lengths and checksum are filled in by
// the encoder.
func NewHeader(kind uint8) *Header {
	return &Header{Flag: NewFlag(kind)}
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.GetEndianEngine()

	binary.LittleEndian.PutUint16(b[0:2], h.Flag.Options)
	b[2] = h.Flag.Kind
	b[3] = h.Flag.Compression
	engine.PutUint32(b[4:8], h.VariableCount)
	engine.PutUint32(b[8:12], h.DescriptorLength)
	engine.PutUint32(b[12:16], h.PayloadLength)
	engine.PutUint64(b[16:24], h.RawLength)
	engine.PutUint32(b[24:28], h.Checksum)

	return b
}

// Parse decodes the header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.Kind = data[2]
	h.Flag.Compression = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.VariableCount = engine.Uint32(data[4:8])
	h.DescriptorLength = engine.Uint32(data[8:12])
	h.PayloadLength = engine.Uint32(data[12:16])
	h.RawLength = engine.Uint64(data[16:24])
	h.Checksum = engine.Uint32(data[24:28])
	if reserved := engine.Uint32(data[28:32]); reserved != 0 {
		return fmt.Errorf("%w: reserved word 0x%08X", errs.ErrInvalidHeaderFlags, reserved)
	}

	return nil
}

// Size returns the total archive size the header describes.
func (h *Header) Size() int {
	return HeaderSize + int(h.DescriptorLength) + int(h.PayloadLength)
}

// ParseHeader decodes the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
