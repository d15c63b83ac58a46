package cover_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/pustakahq/pustakactl/internal/cover"
)

// pngImage encodes a small PNG, fully transparent unless fill is given.
func pngImage(t *testing.T, fill *color.NRGBA) *bytes.Buffer {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if fill != nil {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				img.SetNRGBA(x, y, *fill)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestSave_StoresJPEG(t *testing.T) {
	s := cover.NewStore(t.TempDir())

	red := &color.NRGBA{R: 200, A: 255}
	path, err := s.Save(3, pngImage(t, red))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(path, "3.jpg") {
		t.Errorf("stored path = %q, want *3.jpg", path)
	}
	if !s.Has(3) {
		t.Error("Has(3) false after Save")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := jpeg.Decode(f); err != nil {
		t.Errorf("stored cover is not a decodable JPEG: %v", err)
	}
}

func TestSave_TransparentBecomesWhite(t *testing.T) {
	s := cover.NewStore(t.TempDir())

	path, err := s.Save(1, pngImage(t, nil))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	r, g, b, _ := img.At(4, 4).RGBA()
	// JPEG is lossy; near-white is white enough.
	for name, v := range map[string]uint32{"r": r, "g": g, "b": b} {
		if v>>8 < 250 {
			t.Errorf("channel %s = %d, transparent input should land on white", name, v>>8)
		}
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	s := cover.NewStore(t.TempDir())

	first, err := s.Save(5, pngImage(t, &color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(5, pngImage(t, &color.NRGBA{B: 255, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("paths differ: %q vs %q, want one cover per book", first, second)
	}
}

func TestSave_RejectsNonImage(t *testing.T) {
	s := cover.NewStore(t.TempDir())
	if _, err := s.Save(9, strings.NewReader("not an image")); err == nil {
		t.Error("Save of junk bytes should fail")
	}
	if s.Has(9) {
		t.Error("junk upload left a cover behind")
	}
}

func TestRemove(t *testing.T) {
	s := cover.NewStore(t.TempDir())

	if err := s.Remove(1); err != nil {
		t.Errorf("Remove of missing cover = %v, want nil", err)
	}

	if _, err := s.Save(1, pngImage(t, &color.NRGBA{G: 128, A: 255})); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Has(1) {
		t.Error("cover still present after Remove")
	}
}
