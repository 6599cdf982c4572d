package labeled

// Kind identifies the container variant held by an Entry.
type Kind uint8

const (
	KindInvalid Kind = iota // KindInvalid is an empty or unrecognized entry.
	KindArray               // KindArray holds a single *Array.
	KindDataset             // KindDataset holds a *Dataset.
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindDataset:
		return "dataset"
	default:
		return "invalid"
	}
}

// Entry is a tagged union over the two container kinds.
//
// The zero Entry, and any Entry built from a nil container, reports KindInvalid.
type Entry struct {
	kind    Kind
	array   *Array
	dataset *Dataset
}

// FromArray wraps a single-array container.
func FromArray(a *Array) Entry {
	if a == nil {
		return Entry{}
	}

	return Entry{kind: KindArray, array: a}
}

// FromDataset wraps a multi-variable container.
func FromDataset(ds *Dataset) Entry {
	if ds == nil {
		return Entry{}
	}

	return Entry{kind: KindDataset, dataset: ds}
}

// Kind returns the container variant.
func (e Entry) Kind() Kind {
	return e.kind
}

// Array returns the single-array container, or nil for other kinds.
func (e Entry) Array() *Array {
	return e.array
}

// Dataset returns the multi-variable container, or nil for other kinds.
func (e Entry) Dataset() *Dataset {
	return e.dataset
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	switch e.kind {
	case KindArray:
		return FromArray(e.array.Clone())
	case KindDataset:
		return FromDataset(e.dataset.Clone())
	default:
		return Entry{}
	}
}
