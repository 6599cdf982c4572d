// Package format defines the enumerations stored in archive headers and
// descriptors.
package format

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeRaw       EncodingType = 0x1 // TypeRaw stores fixed-width float64 values.
	TypeVarString EncodingType = 0x2 // TypeVarString stores uvarint length-prefixed strings.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeVarString:
		return "VarString"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-insensitive codec name to its type.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "None", "NONE", "":
		return CompressionNone, true
	case "zstd", "Zstd", "ZSTD":
		return CompressionZstd, true
	case "s2", "S2":
		return CompressionS2, true
	case "lz4", "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
