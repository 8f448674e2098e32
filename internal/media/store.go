package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
)

// Kind classifies an upload slot.
type Kind int

const (
	Image Kind = iota
	Audio
)

var (
	allowedImage = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true}
	allowedAudio = map[string]bool{"mp3": true, "ogg": true, "wav": true, "m4a": true}
)

// ErrUnsupportedType reports an upload with a disallowed extension.
var ErrUnsupportedType = errors.New("unsupported media type")

// Store keeps uploaded media files in a single flat directory. Each file is
// owned by exactly one news item.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the upload directory.
func (s *Store) Dir() string { return s.dir }

// Path resolves a stored filename to its location on disk.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save writes an upload under a timestamp-prefixed name and returns the
// stored filename. Image uploads are decoded first so that a mislabelled
// file is refused before it reaches disk.
func (s *Store) Save(kind Kind, name string, r io.Reader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	allowed := allowedImage
	if kind == Audio {
		allowed = allowedAudio
	}
	if !allowed[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if kind == Image {
		if err := probeImage(ext, data); err != nil {
			return "", err
		}
	}
	stored := time.Now().UTC().Format("20060102150405") + "_" + sanitize(filepath.Base(name))
	if err := os.WriteFile(filepath.Join(s.dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return stored, nil
}

func probeImage(ext string, data []byte) error {
	if ext == "webp" {
		if _, err := webp.DecodeConfig(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("decode webp: %w", err)
		}
		return nil
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	return nil
}

// sanitize keeps filenames to a safe ASCII subset.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// RemoveResult reports the outcome of removing one stored file.
type RemoveResult int

const (
	Removed RemoveResult = iota
	AlreadyAbsent
	Failed
)

// Remove deletes a stored file. A file that is already gone counts as
// success so concurrent sweeps never trip over each other; any other
// failure is reported alongside the error.
func (s *Store) Remove(name string) (RemoveResult, error) {
	if strings.TrimSpace(name) == "" {
		return AlreadyAbsent, nil
	}
	err := os.Remove(s.Path(name))
	switch {
	case err == nil:
		return Removed, nil
	case errors.Is(err, os.ErrNotExist):
		return AlreadyAbsent, nil
	default:
		return Failed, fmt.Errorf("remove %s: %w", name, err)
	}
}

// Exists reports whether a stored file is present on disk.
func (s *Store) Exists(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	_, err := os.Stat(s.Path(name))
	return err == nil
}
