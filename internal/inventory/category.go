package inventory

// CategoryIndex maps category pathstrings ("Capacitors/Aluminium") to their
// primary key, built once per connect from the full category list (spec
// section 4.7).
type CategoryIndex struct {
	byPath map[string]int64
	all    []Category
}

// BuildCategoryIndex builds the pathstring -> pk mapping from a flat
// category list. The mapping is case-sensitive and slash-delimited, exactly
// as the remote API's pathstring field already is.
func BuildCategoryIndex(categories []Category) *CategoryIndex {
	idx := &CategoryIndex{
		byPath: make(map[string]int64, len(categories)),
		all:    categories,
	}
	for _, c := range categories {
		idx.byPath[c.PathString] = c.PK
	}
	return idx
}

// Resolve looks up a category by its pathstring.
func (idx *CategoryIndex) Resolve(path string) (pk int64, ok bool) {
	if idx == nil {
		return 0, false
	}
	pk, ok = idx.byPath[path]
	return pk, ok
}

// All returns every category in the index, in the order the remote API
// returned them.
func (idx *CategoryIndex) All() []Category {
	if idx == nil {
		return nil
	}
	return idx.all
}

// Len reports how many categories are indexed.
func (idx *CategoryIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.all)
}
