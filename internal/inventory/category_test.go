package inventory

import "testing"

func TestBuildCategoryIndexResolve(t *testing.T) {
	idx := BuildCategoryIndex([]Category{
		{PK: 6, Name: "Capacitors", PathString: "Capacitors"},
		{PK: 8, Name: "Aluminium", PathString: "Capacitors/Aluminium"},
	})

	if pk, ok := idx.Resolve("Capacitors/Aluminium"); !ok || pk != 8 {
		t.Fatalf("Resolve(Capacitors/Aluminium) = %d, %v", pk, ok)
	}
	if _, ok := idx.Resolve("Resistors"); ok {
		t.Fatalf("expected Resistors to be unresolved")
	}
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d", idx.Len())
	}
}

func TestCategoryIndexIsCaseSensitive(t *testing.T) {
	idx := BuildCategoryIndex([]Category{{PK: 1, PathString: "Resistors"}})
	if _, ok := idx.Resolve("resistors"); ok {
		t.Fatalf("expected lowercase lookup to miss")
	}
}

func TestNilCategoryIndex(t *testing.T) {
	var idx *CategoryIndex
	if _, ok := idx.Resolve("x"); ok {
		t.Fatalf("nil index should never resolve")
	}
	if idx.Len() != 0 {
		t.Fatalf("nil index Len() should be 0")
	}
	if idx.All() != nil {
		t.Fatalf("nil index All() should be nil")
	}
}
