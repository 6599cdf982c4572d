package archive

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"math"
	"os"

	"github.com/arloliu/casestack/compress"
	"github.com/arloliu/casestack/encoding"
	"github.com/arloliu/casestack/endian"
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/format"
	"github.com/arloliu/casestack/internal/options"
	"github.com/arloliu/casestack/internal/pool"
	"github.com/arloliu/casestack/labeled"
	"github.com/arloliu/casestack/section"
)

type column struct {
	desc VariableDescriptor
	v    *labeled.Variable
}

// Encode serializes entry into an archive.
func Encode(entry labeled.Entry, opts ...Option) ([]byte, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	desc, cols, kind, err := flatten(entry)
	if err != nil {
		return nil, err
	}

	payload := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(payload)
	for _, c := range cols {
		if err := writeColumn(payload, cfg, c); err != nil {
			return nil, err
		}
	}
	raw := payload.Bytes()

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	packed, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	descBytes, err := json.Marshal(desc)
	if err != nil {
		return nil, fmt.Errorf("encode descriptor: %w", err)
	}
	if uint64(len(descBytes)) > math.MaxUint32 || uint64(len(packed)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: archive sections exceed 4GiB", errs.ErrInvalidShape)
	}

	h := section.NewHeader(kind)
	h.Flag.SetCompression(cfg.compression)
	if endian.IsBigEndian(cfg.engine) {
		h.Flag.WithBigEndian()
	}
	h.VariableCount = uint32(len(cols))        //nolint:gosec
	h.DescriptorLength = uint32(len(descBytes)) //nolint:gosec
	h.PayloadLength = uint32(len(packed))       //nolint:gosec
	h.RawLength = uint64(len(raw))
	h.Checksum = crc32.ChecksumIEEE(raw)

	out := make([]byte, 0, h.Size())
	out = append(out, h.Bytes()...)
	out = append(out, descBytes...)
	out = append(out, packed...)

	return out, nil
}

// Decode restores the entry stored in data.
func Decode(data []byte) (labeled.Entry, error) {
	h, desc, err := parse(data)
	if err != nil {
		return labeled.Entry{}, err
	}

	codec, err := compress.GetCodec(h.Flag.CompressionType())
	if err != nil {
		return labeled.Entry{}, err
	}
	if h.RawLength > uint64(math.MaxInt) {
		return labeled.Entry{}, fmt.Errorf("%w: raw payload length %d", errs.ErrTruncatedPayload, h.RawLength)
	}
	start := section.DescriptorOffset + int(h.DescriptorLength)
	raw, err := codec.Decompress(data[start:h.Size()], int(h.RawLength)) //nolint:gosec
	if err != nil {
		return labeled.Entry{}, fmt.Errorf("%w: %w", errs.ErrTruncatedPayload, err)
	}
	if sum := crc32.ChecksumIEEE(raw); sum != h.Checksum {
		return labeled.Entry{}, fmt.Errorf("%w: payload crc32 0x%08X, header 0x%08X", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	vars := make([]*labeled.Variable, len(desc.Variables))
	num := encoding.NewNumericRawDecoder(h.Flag.GetEndianEngine())
	str := encoding.NewVarStringDecoder()
	off := 0
	for i, vd := range desc.Variables {
		v := &labeled.Variable{Name: vd.Name, Dims: orNil(vd.Dims), Shape: orNil(vd.Shape), Attrs: vd.Attrs}
		count, ok := vd.countWithin(len(raw) - off)
		if !ok {
			return labeled.Entry{}, fmt.Errorf("%w: variable %q shape %v exceeds payload", errs.ErrTruncatedPayload, vd.Name, vd.Shape)
		}
		var n int
		switch vd.Encoding {
		case format.TypeRaw:
			v.Values, n, err = num.Decode(raw[off:], count)
		case format.TypeVarString:
			v.Labels, n, err = str.Decode(raw[off:], count)
		default:
			err = fmt.Errorf("%w: variable %q encoding %s", errs.ErrInvalidHeaderFlags, vd.Name, vd.Encoding)
		}
		if err != nil {
			return labeled.Entry{}, err
		}
		off += n
		vars[i] = v
	}
	if off != len(raw) {
		return labeled.Entry{}, fmt.Errorf("%w: %d unread payload bytes", errs.ErrTruncatedPayload, len(raw)-off)
	}

	return assemble(desc, vars)
}

// Inspect parses the header and descriptor without decoding the payload.
func Inspect(data []byte) (section.Header, Descriptor, error) {
	return parse(data)
}

// WriteFile encodes entry and writes it to path.
func WriteFile(path string, entry labeled.Entry, opts ...Option) error {
	data, err := Encode(entry, opts...)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec
}

// ReadFile decodes the archive stored at path.
func ReadFile(path string) (labeled.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return labeled.Entry{}, err
	}

	return Decode(data)
}

func parse(data []byte) (section.Header, Descriptor, error) {
	h, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, Descriptor{}, err
	}
	if len(data) < h.Size() {
		return section.Header{}, Descriptor{}, fmt.Errorf("%w: archive needs %d bytes, have %d", errs.ErrTruncatedPayload, h.Size(), len(data))
	}

	var desc Descriptor
	end := section.DescriptorOffset + int(h.DescriptorLength)
	if err := json.Unmarshal(data[section.DescriptorOffset:end], &desc); err != nil {
		return section.Header{}, Descriptor{}, fmt.Errorf("%w: descriptor: %w", errs.ErrInvalidHeaderFlags, err)
	}
	if want := kindName(h.Flag.Kind); desc.Kind != want {
		return section.Header{}, Descriptor{}, fmt.Errorf("%w: descriptor kind %q, header %q", errs.ErrInvalidHeaderFlags, desc.Kind, want)
	}
	if len(desc.Variables) != int(h.VariableCount) {
		return section.Header{}, Descriptor{}, fmt.Errorf("%w: descriptor lists %d variables, header %d", errs.ErrInvalidHeaderFlags, len(desc.Variables), h.VariableCount)
	}

	return h, desc, nil
}

func kindName(kind uint8) string {
	if kind == section.KindArray {
		return labeled.KindArray.String()
	}

	return labeled.KindDataset.String()
}

func flatten(entry labeled.Entry) (Descriptor, []column, uint8, error) {
	switch entry.Kind() {
	case labeled.KindArray:
		a := entry.Array()
		desc := Descriptor{Kind: entry.Kind().String(), Name: a.Name, Attrs: a.Attrs}
		data := &labeled.Variable{Name: a.Name, Dims: a.Dims, Shape: a.Shape, Values: a.Data}
		cols := []column{{desc: describe(RoleData, data), v: data}}
		for _, v := range a.Coords.All() {
			cols = append(cols, column{desc: describe(RoleCoord, v), v: v})
		}
		for _, c := range cols {
			desc.Variables = append(desc.Variables, c.desc)
		}

		return desc, cols, section.KindArray, nil

	case labeled.KindDataset:
		ds := entry.Dataset()
		desc := Descriptor{Kind: entry.Kind().String(), Attrs: ds.Attrs}
		var cols []column
		for _, v := range ds.Coords.All() {
			cols = append(cols, column{desc: describe(RoleCoord, v), v: v})
		}
		for _, v := range ds.Vars.All() {
			cols = append(cols, column{desc: describe(RoleVar, v), v: v})
		}
		desc.Variables = make([]VariableDescriptor, 0, len(cols))
		for _, c := range cols {
			desc.Variables = append(desc.Variables, c.desc)
		}

		return desc, cols, section.KindDataset, nil

	default:
		return Descriptor{}, nil, 0, &errs.UnsupportedContainerError{Kind: entry.Kind().String()}
	}
}

func writeColumn(payload *pool.ByteBuffer, cfg *config, c column) error {
	want := labeled.ShapeSize(c.v.Shape)

	var enc interface {
		Bytes() []byte
		Finish()
	}
	switch c.desc.Encoding {
	case format.TypeVarString:
		if len(c.v.Labels) != want {
			return fmt.Errorf("%w: %q holds %d labels, shape %v needs %d", errs.ErrInvalidShape, c.v.Name, len(c.v.Labels), c.v.Shape, want)
		}
		e := encoding.NewVarStringEncoder()
		_ = e.WriteSlice(c.v.Labels)
		enc = e
	default:
		if len(c.v.Values) != want {
			return fmt.Errorf("%w: %q holds %d values, shape %v needs %d", errs.ErrInvalidShape, c.v.Name, len(c.v.Values), c.v.Shape, want)
		}
		e := encoding.NewNumericRawEncoder(cfg.engine)
		_ = e.WriteSlice(c.v.Values)
		enc = e
	}
	payload.MustWrite(enc.Bytes())
	enc.Finish()

	return nil
}

func assemble(desc Descriptor, vars []*labeled.Variable) (labeled.Entry, error) {
	switch desc.Kind {
	case labeled.KindArray.String():
		if len(vars) == 0 || desc.Variables[0].Role != RoleData {
			return labeled.Entry{}, fmt.Errorf("%w: array archive without data column", errs.ErrInvalidHeaderFlags)
		}
		d := vars[0]
		a, err := labeled.NewArray(desc.Name, d.Dims, d.Shape, d.Values)
		if err != nil {
			return labeled.Entry{}, err
		}
		a.Attrs = desc.Attrs
		for _, v := range vars[1:] {
			if err := a.SetCoord(v); err != nil {
				return labeled.Entry{}, err
			}
		}

		return labeled.FromArray(a), nil

	default:
		ds := labeled.NewDataset()
		ds.Attrs = desc.Attrs
		for i, v := range vars {
			set := ds.SetVar
			if desc.Variables[i].Role == RoleCoord {
				set = ds.SetCoord
			}
			if err := set(v); err != nil {
				return labeled.Entry{}, err
			}
		}

		return labeled.FromDataset(ds), nil
	}
}
