// Package encode turns stitched captures into PNG files, following the
// classic screenshot naming scheme: a dated file in the pictures directory,
// with a serial suffix when the name is already taken.
package encode

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/declantsien/wescap/internal/stitch"
)

// maxSerial bounds the collision loop so a wedged directory cannot make
// Save spin forever.
const maxSerial = 1000

// ToImage converts the ARGB canvas into a non-premultiplied RGBA image the
// png encoder accepts. Fully transparent pixels stay fully transparent, so
// gaps between outputs survive the conversion.
func ToImage(img *stitch.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		src := img.Pix[y*img.Stride:]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < img.Width; x++ {
			s := src[x*4 : x*4+4]
			d := dst[x*4 : x*4+4]
			d[0] = s[2]
			d[1] = s[1]
			d[2] = s[0]
			d[3] = s[3]
		}
	}
	return out
}

// WritePNG encodes the canvas onto w.
func WritePNG(w io.Writer, img *stitch.Image) error {
	if err := png.Encode(w, ToImage(img)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Filename returns the dated screenshot name for the given moment.
func Filename(at time.Time) string {
	return "wayland-screenshot-" + at.Format("2006-01-02_15-04-05") + ".png"
}

func serialFilename(at time.Time, serial int) string {
	return fmt.Sprintf("wayland-screenshot-%s-%d.png", at.Format("2006-01-02_15-04-05"), serial)
}

// DefaultDir is where screenshots land when no directory was configured:
// XDG_PICTURES_DIR if set, the home directory otherwise. The current
// directory is the last resort when no home is known.
func DefaultDir() string {
	if dir := os.Getenv("XDG_PICTURES_DIR"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// Save writes the canvas into dir under a dated name and returns the full
// path. Existing files are never overwritten; a serial suffix is appended
// until a fresh name is found.
func Save(dir string, at time.Time, img *stitch.Image) (string, error) {
	name := Filename(at)
	for serial := 0; ; serial++ {
		if serial > 0 {
			name = serialFilename(at, serial)
		}
		if serial > maxSerial {
			return "", fmt.Errorf("no free screenshot name in %s", dir)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", fmt.Errorf("create %s: %w", path, err)
		}
		if err := WritePNG(f, img); err != nil {
			f.Close()
			os.Remove(path)
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", path, err)
		}
		return path, nil
	}
}
