package forms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// MaxCoverSize bounds the cover images accepted for preview.
const MaxCoverSize = 10 << 20

// Cover describes a locally chosen cover image. It is shown to the user and
// never uploaded.
type Cover struct {
	Path     string
	Name     string
	Size     int64
	MIMEType string
}

// LoadCover inspects the file at path and checks that it is an image.
func LoadCover(path string) (Cover, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Cover{}, fmt.Errorf("cover image: %w", err)
	}
	if fi.IsDir() {
		return Cover{}, fmt.Errorf("cover image: %s is a directory", path)
	}
	if fi.Size() > MaxCoverSize {
		return Cover{}, fmt.Errorf("cover image: %s exceeds %s", humanize.IBytes(uint64(fi.Size())), humanize.IBytes(MaxCoverSize))
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Cover{}, fmt.Errorf("cover image: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return Cover{}, fmt.Errorf("cover image: %s is %s, not an image", filepath.Base(path), mt.String())
	}

	return Cover{
		Path:     path,
		Name:     filepath.Base(path),
		Size:     fi.Size(),
		MIMEType: mt.String(),
	}, nil
}

// Preview is the one-line summary shown under the form.
func (c Cover) Preview() string {
	return fmt.Sprintf("%s (%s, %s) - preview only, not uploaded", c.Name, c.MIMEType, humanize.IBytes(uint64(c.Size)))
}
