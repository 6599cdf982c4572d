package section

const (
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	MagicArchiveV1 = 0xCA10 // MagicArchiveV1 identifies format version 1.
)

const (
	KindArray   uint8 = 0x1 // KindArray marks a single-array container.
	KindDataset uint8 = 0x2 // KindDataset marks a multi-variable container.
)

const (
	HeaderSize       = 32         // fixed header size in bytes
	DescriptorOffset = HeaderSize // byte offset where the descriptor starts
)
