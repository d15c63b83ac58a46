// Package cover stores book cover images. Uploads are flattened onto a
// white background and re-encoded as JPEG, one cover per book.
package cover

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strconv"

	_ "image/gif"
	_ "image/png"
)

// Quality is the fixed JPEG quality for stored covers.
const Quality = 85

// Store keeps cover files under one directory, keyed by book id.
type Store struct {
	dir string
}

// NewStore creates a cover store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns where the cover for a book lives, whether or not it exists.
func (s *Store) Path(bookID int) string {
	return filepath.Join(s.dir, strconv.Itoa(bookID)+".jpg")
}

// Has reports whether a cover exists for the book.
func (s *Store) Has(bookID int) bool {
	_, err := os.Stat(s.Path(bookID))
	return err == nil
}

// Save decodes the uploaded image, composites it over opaque white, and
// writes it as a JPEG keyed by book id. An existing cover is overwritten so
// only one cover exists per book. Returns the stored path.
func (s *Store) Save(bookID int, upload io.Reader) (string, error) {
	src, _, err := image.Decode(upload)
	if err != nil {
		return "", fmt.Errorf("decoding cover image: %w", err)
	}

	// Transparent pixels become white rather than black in the JPEG.
	bounds := src.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return "", fmt.Errorf("creating cover dir: %w", err)
	}

	path := s.Path(bookID)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating cover file: %w", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, flat, &jpeg.Options{Quality: Quality}); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("encoding cover: %w", err)
	}
	return path, nil
}

// Remove deletes the cover for a book if it exists.
func (s *Store) Remove(bookID int) error {
	err := os.Remove(s.Path(bookID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
