package uploads

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/widescope/api/internal/models"
	appErr "github.com/widescope/api/pkg/errors"
)

// CompressedPrefix is prepended to the derived thumbnail's filename.
const CompressedPrefix = "r_"

// Compressor produces a fixed-dimension JPEG derivative beside the
// original file.
type Compressor struct {
	Dir     string
	Width   int
	Height  int
	Quality int
}

func NewCompressor(dir string) *Compressor {
	return &Compressor{Dir: dir, Width: 250, Height: 250, Quality: 90}
}

// Compress writes a resized re-encoded copy of name as r_<name>. A missing
// or sentinel name is a no-op. The resize never enlarges.
func (c *Compressor) Compress(name string) error {
	if name == "" || name == models.DefaultLogo {
		return nil
	}

	src, err := imaging.Open(filepath.Join(c.Dir, name))
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "couldn't compress the image")
	}

	thumb := imaging.Fit(src, c.Width, c.Height, imaging.Lanczos)

	out, err := os.Create(filepath.Join(c.Dir, CompressedPrefix+name))
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "couldn't compress the image")
	}
	defer out.Close()

	if err := imaging.Encode(out, thumb, imaging.JPEG, imaging.JPEGQuality(c.Quality)); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "couldn't compress the image")
	}
	return nil
}
