package rdbn

import (
	"slices"

	"github.com/arloliu/cfgbin/internal/hash"
)

// FieldDeclaration is a resolved field entry.
type FieldDeclaration struct {
	Name     string
	Type     FieldType
	Category FieldTypeCategory
	Offset   int32 // byte offset inside the row
	Size     int32 // bytes per value
	Count    int32 // values per row
}

// TypeDeclaration is a resolved row layout.
type TypeDeclaration struct {
	Name string
	// UnknownHash is an opaque secondary hash carried by the type entry.
	// It does not take part in structural equality.
	UnknownHash uint32
	Fields      []FieldDeclaration
}

// Equal reports whether two declarations have the same name and the same ordered fields.
func (d TypeDeclaration) Equal(other TypeDeclaration) bool {
	return d.Name == other.Name && slices.Equal(d.Fields, other.Fields)
}

func (d TypeDeclaration) fingerprint() uint64 {
	fp := hash.NewFingerprint().AddString(d.Name).AddInt(int64(len(d.Fields)))
	for _, f := range d.Fields {
		fp.AddString(f.Name).
			AddInt(int64(f.Type)).
			AddInt(int64(f.Category)).
			AddInt(int64(f.Offset)).
			AddInt(int64(f.Size)).
			AddInt(int64(f.Count))
	}

	return fp.Sum()
}

// deduplicate collapses structurally identical declarations.
//
// Returns the distinct declarations in first-seen order and, for every input index, the
// canonical index of its declaration in the distinct list.
func deduplicate(decls []TypeDeclaration) ([]TypeDeclaration, []int) {
	distinct := make([]TypeDeclaration, 0, len(decls))
	canonical := make([]int, len(decls))
	buckets := make(map[uint64][]int, len(decls))

	for i, decl := range decls {
		key := decl.fingerprint()

		idx := -1
		for _, candidate := range buckets[key] {
			if distinct[candidate].Equal(decl) {
				idx = candidate
				break
			}
		}

		if idx < 0 {
			idx = len(distinct)
			distinct = append(distinct, decl)
			buckets[key] = append(buckets[key], idx)
		}

		canonical[i] = idx
	}

	return distinct, canonical
}
