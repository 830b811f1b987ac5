package uploads

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/widescope/api/internal/models"
	appErr "github.com/widescope/api/pkg/errors"
)

func writeTestImage(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestCompressor_FitsWithinBounds(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "logo.png", 800, 400)

	c := NewCompressor(dir)
	require.NoError(t, c.Compress("logo.png"))

	thumb, err := imaging.Open(filepath.Join(dir, CompressedPrefix+"logo.png"), imaging.AutoOrientation(false))
	require.NoError(t, err)
	bounds := thumb.Bounds()
	require.LessOrEqual(t, bounds.Dx(), 250)
	require.LessOrEqual(t, bounds.Dy(), 250)
	// Aspect ratio preserved: 800x400 fits to 250x125.
	require.Equal(t, 250, bounds.Dx())
	require.Equal(t, 125, bounds.Dy())
}

func TestCompressor_NeverEnlarges(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "small.png", 100, 80)

	c := NewCompressor(dir)
	require.NoError(t, c.Compress("small.png"))

	thumb, err := imaging.Open(filepath.Join(dir, CompressedPrefix+"small.png"))
	require.NoError(t, err)
	require.Equal(t, 100, thumb.Bounds().Dx())
	require.Equal(t, 80, thumb.Bounds().Dy())
}

func TestCompressor_SentinelIsNoOp(t *testing.T) {
	dir := t.TempDir()
	c := NewCompressor(dir)

	require.NoError(t, c.Compress(""))
	require.NoError(t, c.Compress(models.DefaultLogo))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCompressor_MissingSource(t *testing.T) {
	c := NewCompressor(t.TempDir())

	err := c.Compress("missing.png")
	require.True(t, appErr.IsCode(err, appErr.CodeInternal))
}
