// Package pixel maps DRM fourcc pixel formats onto the wl_shm encoding and
// the ARGB32 memory order the compositing stage works in.
package pixel

import "fmt"

// Format is a DRM fourcc code as delivered by the capture protocol's
// format event.
type Format uint32

// Little-endian fourcc codes for the 32-bit formats the capture path
// understands. Memory order is the fourcc read backwards: XRGB8888 stores
// bytes B, G, R, X.
const (
	XRGB8888 Format = 0x34325258 // 'XR24'
	ARGB8888 Format = 0x34325241 // 'AR24'
	XBGR8888 Format = 0x34324258 // 'XB24'
	ABGR8888 Format = 0x34324241 // 'AB24'
)

// wl_shm format codes. ARGB8888 and XRGB8888 predate the fourcc scheme and
// use 0 and 1 on the shm wire; every other format is its fourcc value.
const (
	shmARGB8888 uint32 = 0
	shmXRGB8888 uint32 = 1
)

// Supported reports whether the capture path can allocate and composite
// buffers of this format.
func (f Format) Supported() bool {
	switch f {
	case XRGB8888, ARGB8888, XBGR8888, ABGR8888:
		return true
	}
	return false
}

// BytesPerPixel returns the pixel size of a supported format, zero otherwise.
func (f Format) BytesPerPixel() int {
	if f.Supported() {
		return 4
	}
	return 0
}

// HasAlpha reports whether the fourth channel carries coverage.
func (f Format) HasAlpha() bool {
	return f == ARGB8888 || f == ABGR8888
}

// ShmCode translates the fourcc into the wl_shm format enum.
func (f Format) ShmCode() (uint32, error) {
	switch f {
	case ARGB8888:
		return shmARGB8888, nil
	case XRGB8888:
		return shmXRGB8888, nil
	case XBGR8888, ABGR8888:
		return uint32(f), nil
	}
	return 0, fmt.Errorf("no wl_shm encoding for format %s", f)
}

// String renders the fourcc as its four ASCII characters, or hex when the
// code holds unprintable bytes.
func (f Format) String() string {
	c := [4]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	for _, b := range c {
		if b < 0x20 || b > 0x7e {
			return fmt.Sprintf("0x%08x", uint32(f))
		}
	}
	return string(c[:])
}

// ConvertRowARGB32 rewrites one row of pixels in format f into ARGB32 memory
// order (B, G, R, A per pixel, little endian). dst and src must both hold at
// least 4*pixels bytes. Formats without an alpha channel come out fully
// opaque.
func ConvertRowARGB32(dst, src []byte, pixels int, f Format) error {
	if !f.Supported() {
		return fmt.Errorf("cannot convert format %s", f)
	}
	n := pixels * 4
	if len(dst) < n || len(src) < n {
		return fmt.Errorf("row conversion needs %d bytes, have dst=%d src=%d", n, len(dst), len(src))
	}
	switch f {
	case ARGB8888:
		copy(dst[:n], src[:n])
	case XRGB8888:
		copy(dst[:n], src[:n])
		for i := 3; i < n; i += 4 {
			dst[i] = 0xff
		}
	case ABGR8888:
		for i := 0; i < n; i += 4 {
			dst[i] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i]
			dst[i+3] = src[i+3]
		}
	case XBGR8888:
		for i := 0; i < n; i += 4 {
			dst[i] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i]
			dst[i+3] = 0xff
		}
	}
	return nil
}
