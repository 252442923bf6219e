// Package drm allocates linear dumb buffers on a DRM node and exports them
// as dma-buf file descriptors. It is the buffer-object device behind the
// GPU capture backend; no rendering or modesetting is done here.
package drm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ModLinear is the DRM format modifier for plain linear layout, the only
// layout dumb buffers have.
const ModLinear uint64 = 0

// ioctl request numbers from drm.h / drm_mode.h.
const (
	iocBase              = 'd'
	iocNrPrimeHandleToFD = 0x2d
	iocNrCreateDumb      = 0xb2
	iocNrMapDumb         = 0xb3
	iocNrDestroyDumb     = 0xb4
)

type createDumb struct {
	height uint32
	width  uint32
	bpp    uint32
	flags  uint32
	handle uint32
	pitch  uint32
	size   uint64
}

type mapDumb struct {
	handle uint32
	pad    uint32
	offset uint64
}

type destroyDumb struct {
	handle uint32
}

type primeHandle struct {
	handle uint32
	flags  uint32
	fd     int32
}

// iowr encodes a read-write ioctl request for the DRM character device.
func iowr(nr, size uintptr) uintptr {
	const dirRW = 3
	return dirRW<<30 | size<<16 | iocBase<<8 | nr
}

// Device is an open DRM node.
type Device struct {
	path string
	fd   int
}

// Open opens the DRM node at path, typically /dev/dri/card0.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open drm node %s: %w", path, err)
	}
	return &Device{path: path, fd: fd}, nil
}

// Path returns the node path the device was opened from.
func (d *Device) Path() string {
	return d.path
}

// Close releases the device. Buffers created from it must be destroyed
// first.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

func (d *Device) ioctl(req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), req, uintptr(arg))
		if errno == 0 {
			return nil
		}
		if errno == unix.EINTR || errno == unix.EAGAIN {
			continue
		}
		return errno
	}
}

// Buffer is one dumb buffer object. Dumb buffers are always single-plane
// linear, but the accessors speak in planes so callers can treat the object
// like any multi-planar buffer.
type Buffer struct {
	dev    *Device
	handle uint32
	width  int
	height int
	bpp    int
	pitch  uint32
	size   uint64
	data   []byte
}

// CreateDumb allocates a width x height buffer with bpp bits per pixel. The
// kernel picks the pitch and total size.
func (d *Device) CreateDumb(width, height, bpp int) (*Buffer, error) {
	if width <= 0 || height <= 0 || bpp <= 0 {
		return nil, fmt.Errorf("invalid dumb buffer geometry %dx%d bpp=%d", width, height, bpp)
	}
	arg := createDumb{
		height: uint32(height),
		width:  uint32(width),
		bpp:    uint32(bpp),
	}
	req := iowr(iocNrCreateDumb, unsafe.Sizeof(arg))
	if err := d.ioctl(req, unsafe.Pointer(&arg)); err != nil {
		return nil, fmt.Errorf("create dumb buffer %dx%d on %s: %w", width, height, d.path, err)
	}
	return &Buffer{
		dev:    d,
		handle: arg.handle,
		width:  width,
		height: height,
		bpp:    bpp,
		pitch:  arg.pitch,
		size:   arg.size,
	}, nil
}

// Planes returns the plane count, always 1 for dumb buffers.
func (b *Buffer) Planes() int {
	return 1
}

// Stride returns the byte pitch of the given plane.
func (b *Buffer) Stride(plane int) uint32 {
	if plane != 0 {
		return 0
	}
	return b.pitch
}

// Offset returns the byte offset of the given plane.
func (b *Buffer) Offset(plane int) uint32 {
	return 0
}

// Modifier returns the format modifier of the buffer layout.
func (b *Buffer) Modifier() uint64 {
	return ModLinear
}

// Size returns the total allocation size in bytes.
func (b *Buffer) Size() uint64 {
	return b.size
}

// Export returns a new dma-buf file descriptor for the given plane. The
// caller owns the descriptor and must close it.
func (b *Buffer) Export(plane int) (int, error) {
	if plane != 0 {
		return -1, fmt.Errorf("dumb buffer has no plane %d", plane)
	}
	arg := primeHandle{
		handle: b.handle,
		flags:  unix.O_CLOEXEC | unix.O_RDWR,
		fd:     -1,
	}
	req := iowr(iocNrPrimeHandleToFD, unsafe.Sizeof(arg))
	if err := b.dev.ioctl(req, unsafe.Pointer(&arg)); err != nil {
		return -1, fmt.Errorf("export dma-buf fd: %w", err)
	}
	return int(arg.fd), nil
}

// Map maps the buffer read-write and returns the pixel bytes. The mapping
// stays valid until Destroy.
func (b *Buffer) Map() ([]byte, error) {
	if b.data != nil {
		return b.data, nil
	}
	arg := mapDumb{handle: b.handle}
	req := iowr(iocNrMapDumb, unsafe.Sizeof(arg))
	if err := b.dev.ioctl(req, unsafe.Pointer(&arg)); err != nil {
		return nil, fmt.Errorf("map dumb buffer: %w", err)
	}
	data, err := unix.Mmap(b.dev.fd, int64(arg.offset), int(b.size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap dumb buffer: %w", err)
	}
	b.data = data
	return b.data, nil
}

// Destroy unmaps the buffer and frees the buffer object.
func (b *Buffer) Destroy() error {
	var firstErr error
	if b.data != nil {
		if err := unix.Munmap(b.data); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("munmap dumb buffer: %w", err)
		}
		b.data = nil
	}
	if b.handle != 0 {
		arg := destroyDumb{handle: b.handle}
		req := iowr(iocNrDestroyDumb, unsafe.Sizeof(arg))
		if err := b.dev.ioctl(req, unsafe.Pointer(&arg)); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("destroy dumb buffer: %w", err)
		}
		b.handle = 0
	}
	return firstErr
}
