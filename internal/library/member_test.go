package library_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/pustakahq/pustakactl/internal/library"
)

func TestDirectoryAdd(t *testing.T) {
	lib := openLibrary(t)

	m, err := lib.Members.Add("Ada", "10A", "2024001")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if m.ID != 1 || m.Name != "Ada" || m.Class != "10A" || m.NIS != "2024001" {
		t.Errorf("member = %+v", m)
	}
}

func TestDirectoryAdd_AllFieldsRequired(t *testing.T) {
	lib := openLibrary(t)

	for _, args := range [][3]string{
		{"", "10A", "1"},
		{"Ada", "", "1"},
		{"Ada", "10A", ""},
	} {
		if _, err := lib.Members.Add(args[0], args[1], args[2]); !errors.Is(err, library.ErrValidation) {
			t.Errorf("Add(%q, %q, %q) = %v, want ErrValidation", args[0], args[1], args[2], err)
		}
	}
}

func TestDirectoryAdd_DuplicateNIS(t *testing.T) {
	lib := openLibrary(t)

	if _, err := lib.Members.Add("Ada", "10A", "2024001"); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Members.Add("Grace", "11B", "2024001"); !errors.Is(err, library.ErrDuplicate) {
		t.Fatalf("duplicate NIS = %v, want ErrDuplicate", err)
	}

	// NIS comparison is exact; a case variant is a different NIS.
	if _, err := lib.Members.Add("Case", "11B", "2024001a"); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Members.Add("Variant", "11B", "2024001A"); err != nil {
		t.Errorf("case-variant NIS rejected: %v", err)
	}

	members, err := lib.Members.Members()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(slices.Collect(members)); got != 3 {
		t.Errorf("directory size = %d, want 3", got)
	}
}

func TestDirectoryGet_Unknown(t *testing.T) {
	lib := openLibrary(t)
	if _, err := lib.Members.Get(9); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("Get(9) = %v, want ErrNotFound", err)
	}
}
