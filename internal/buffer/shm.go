package buffer

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/rajveermalviya/go-wayland/wayland/client"
	"golang.org/x/sys/unix"

	"github.com/declantsien/wescap/internal/pixel"
)

// ShmBackend allocates CPU buffers backed by an anonymous file shared with
// the compositor through a wl_shm pool.
type ShmBackend struct {
	shm *client.Shm
	log *slog.Logger
}

var _ Backend = (*ShmBackend)(nil)

func NewShmBackend(shm *client.Shm, log *slog.Logger) *ShmBackend {
	if log == nil {
		log = slog.Default()
	}
	return &ShmBackend{shm: shm, log: log}
}

func (b *ShmBackend) Kind() Kind {
	return KindShm
}

// shmGeometry computes stride and total size for a buffer, rejecting any
// geometry whose byte math wraps. The divisions re-derive the inputs from
// the products, which fails exactly when a multiplication overflowed.
func shmGeometry(width, height, bpp int) (stride, size int, err error) {
	if width <= 0 || height <= 0 || bpp <= 0 {
		return 0, 0, fmt.Errorf("invalid buffer geometry %dx%d bpp=%d", width, height, bpp)
	}
	stride = width * bpp
	if stride/bpp != width {
		return 0, 0, fmt.Errorf("stride overflows for width %d bpp %d", width, bpp)
	}
	size = stride * height
	if size/height != stride {
		return 0, 0, fmt.Errorf("buffer size overflows for %dx%d stride %d", width, height, stride)
	}
	if size > math.MaxInt32 {
		return 0, 0, fmt.Errorf("buffer size %d exceeds the shm pool limit", size)
	}
	return stride, size, nil
}

// createShmFile returns a file descriptor for an anonymous, unlinked file
// suitable for sharing via fd passing.
func createShmFile() (int, error) {
	fd, err := unix.MemfdCreate("wescap-shm", unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err == nil {
		return fd, nil
	}
	// memfd_create needs Linux 3.17; O_TMPFILE covers older kernels.
	fd, terr := unix.Open(os.TempDir(), unix.O_RDWR|unix.O_TMPFILE|unix.O_CLOEXEC, 0600)
	if terr == nil {
		return fd, nil
	}
	return -1, fmt.Errorf("create shm backing file: %w", err)
}

func (b *ShmBackend) Allocate(width, height int, format pixel.Format) (Buffer, error) {
	shmCode, err := format.ShmCode()
	if err != nil {
		return nil, err
	}
	stride, size, err := shmGeometry(width, height, format.BytesPerPixel())
	if err != nil {
		return nil, err
	}

	fd, err := createShmFile()
	if err != nil {
		return nil, err
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("size shm backing file to %d: %w", size, err)
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("mmap shm buffer: %w", err)
	}

	pool, err := b.shm.CreatePool(fd, int32(size))
	if err != nil {
		unix.Munmap(data)
		unix.Close(fd)
		return nil, fmt.Errorf("create shm pool: %w", err)
	}
	wire, err := pool.CreateBuffer(0, int32(width), int32(height), int32(stride), shmCode)
	if err != nil {
		pool.Destroy()
		unix.Munmap(data)
		unix.Close(fd)
		return nil, fmt.Errorf("create shm wire buffer: %w", err)
	}

	return &shmBuffer{
		wire:   wire,
		pool:   pool,
		fd:     fd,
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		format: format,
		log:    b.log,
	}, nil
}

type shmBuffer struct {
	wire   *client.Buffer
	pool   *client.ShmPool
	fd     int
	data   []byte
	width  int
	height int
	stride int
	format pixel.Format
	log    *slog.Logger
}

func (b *shmBuffer) Wire() *client.Buffer { return b.wire }

func (b *shmBuffer) Bytes() []byte { return b.data }

func (b *shmBuffer) Width() int { return b.width }

func (b *shmBuffer) Height() int { return b.height }

func (b *shmBuffer) Stride() int { return b.stride }

func (b *shmBuffer) Format() pixel.Format { return b.format }

// Destroy releases the wire objects, the mapping and the backing file. The
// wire buffer is destroyed even when releasing local resources fails.
func (b *shmBuffer) Destroy() error {
	var firstErr error
	if b.wire != nil {
		if err := b.wire.Destroy(); err != nil {
			firstErr = fmt.Errorf("destroy wire buffer: %w", err)
		}
		b.wire = nil
	}
	if b.pool != nil {
		if err := b.pool.Destroy(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("destroy shm pool: %w", err)
		}
		b.pool = nil
	}
	if b.data != nil {
		if err := unix.Munmap(b.data); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("munmap shm buffer: %w", err)
		}
		b.data = nil
	}
	if b.fd >= 0 {
		if err := unix.Close(b.fd); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close shm fd: %w", err)
		}
		b.fd = -1
	}
	return firstErr
}
