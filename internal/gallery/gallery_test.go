package gallery

import (
	"os"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSaveAndList(t *testing.T) {
	s := tempStore(t)
	if err := s.Save("beach.jpg", []byte("jpegdata")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("airport.png", []byte("pngdata")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "airport.png" || names[1] != "beach.jpg" {
		t.Errorf("names = %v", names)
	}
}

func TestListSkipsNonImages(t *testing.T) {
	s := tempStore(t)
	if err := os.WriteFile(s.dir+"/notes.txt", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("non-image listed: %v", names)
	}
}

func TestSaveRejectsTraversalAndBadTypes(t *testing.T) {
	s := tempStore(t)
	for _, name := range []string{"../escape.png", "a/b.png", "script.sh", ""} {
		if err := s.Save(name, []byte("x")); err == nil {
			t.Errorf("Save(%q) should fail", name)
		}
	}
}

func TestPathMissingFile(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Path("nope.png"); err == nil {
		t.Error("expected error for missing photo")
	}
}
