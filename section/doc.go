// Package section defines the fixed binary header of casestack archives.
//
// An archive is laid out as:
//
//	┌─────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                    │
//	├─────────────────────────────────────────────┤
//	│ Descriptor (JSON, DescriptorLength bytes)   │
//	├─────────────────────────────────────────────┤
//	│ Payload (compressed, PayloadLength bytes)   │
//	└─────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|-------------------------------------
//	0-1    | Options          | uint16 | magic number and option bits
//	2      | Kind             | uint8  | 0x1 array, 0x2 dataset
//	3      | Compression      | uint8  | format.CompressionType of the payload
//	4-7    | VariableCount    | uint32 | number of payload columns
//	8-11   | DescriptorLength | uint32 | size of the JSON descriptor
//	12-15  | PayloadLength    | uint32 | size of the compressed payload
//	16-23  | RawLength        | uint64 | size of the payload before compression
//	24-27  | Checksum         | uint32 | CRC-32 (IEEE) of the raw payload
//	28-31  | Reserved         | uint32 | must be zero
//
// The Options field is always little-endian so the byte order of the rest of
// the header can be read from it:
//
//	Bit 0:     Endianness (0=little-endian, 1=big-endian)
//	Bit 1-3:   Reserved, must be zero
//	Bit 4-15:  Magic number (0xCA10 for format version 1)
package section
