package buffer

import (
	"fmt"
	"log/slog"

	"github.com/rajveermalviya/go-wayland/wayland/client"
	"golang.org/x/sys/unix"

	"github.com/declantsien/wescap/internal/drm"
	"github.com/declantsien/wescap/internal/pixel"
	"github.com/declantsien/wescap/internal/proto/linuxdmabuf"
)

// maxPlanes is the largest plane count the dma-buf wire protocol carries.
const maxPlanes = 4

// Device is the opaque buffer-object allocator behind the dma-buf backend.
type Device interface {
	Create(width, height, bpp int) (BufferObject, error)
}

// BufferObject is one allocated hardware buffer. Export hands out a new
// dma-buf descriptor per call; the caller owns returned descriptors.
type BufferObject interface {
	Planes() int
	Stride(plane int) uint32
	Offset(plane int) uint32
	Modifier() uint64
	Export(plane int) (int, error)
	Map() ([]byte, error)
	Destroy() error
}

// DRMDevice adapts a drm dumb-buffer device to the Device interface.
type DRMDevice struct {
	Dev *drm.Device
}

func (d DRMDevice) Create(width, height, bpp int) (BufferObject, error) {
	bo, err := d.Dev.CreateDumb(width, height, bpp)
	if err != nil {
		return nil, err
	}
	return bo, nil
}

// DmabufBackend allocates GPU buffers and posts them to the compositor as
// dma-buf wire buffers.
type DmabufBackend struct {
	dev    Device
	dmabuf *linuxdmabuf.ZwpLinuxDmabufV1
	log    *slog.Logger
}

var _ Backend = (*DmabufBackend)(nil)

func NewDmabufBackend(dev Device, dmabuf *linuxdmabuf.ZwpLinuxDmabufV1, log *slog.Logger) *DmabufBackend {
	if log == nil {
		log = slog.Default()
	}
	return &DmabufBackend{dev: dev, dmabuf: dmabuf, log: log}
}

func (b *DmabufBackend) Kind() Kind {
	return KindDma
}

func (b *DmabufBackend) Allocate(width, height int, format pixel.Format) (Buffer, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("unsupported pixel format %s", format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer geometry %dx%d", width, height)
	}

	bo, err := b.dev.Create(width, height, bpp*8)
	if err != nil {
		return nil, fmt.Errorf("create buffer object: %w", err)
	}
	planes := bo.Planes()
	if planes < 1 || planes > maxPlanes {
		bo.Destroy()
		return nil, fmt.Errorf("buffer object has %d planes, supported range is 1 to %d", planes, maxPlanes)
	}

	// Export every plane before touching the wire so a failure here leaves
	// nothing behind: close what was opened, then free the object.
	fds := make([]int, 0, planes)
	for i := 0; i < planes; i++ {
		fd, err := bo.Export(i)
		if err != nil {
			closeAll(fds)
			bo.Destroy()
			return nil, fmt.Errorf("export plane %d descriptor: %w", i, err)
		}
		fds = append(fds, fd)
	}

	data, err := bo.Map()
	if err != nil {
		closeAll(fds)
		bo.Destroy()
		return nil, fmt.Errorf("map buffer object: %w", err)
	}

	wire, err := b.createWireBuffer(bo, fds, width, height, format)
	if err != nil {
		closeAll(fds)
		bo.Destroy()
		return nil, err
	}

	return &dmaBuffer{
		wire:   wire,
		bo:     bo,
		fds:    fds,
		data:   data,
		width:  width,
		height: height,
		stride: int(bo.Stride(0)),
		format: format,
		log:    b.log,
	}, nil
}

// createWireBuffer batches the plane descriptors into a params object and
// imports them as a wl_buffer in one roundtrip-free create_immed.
func (b *DmabufBackend) createWireBuffer(bo BufferObject, fds []int, width, height int, format pixel.Format) (*client.Buffer, error) {
	params, err := b.dmabuf.CreateParams()
	if err != nil {
		return nil, fmt.Errorf("create dmabuf params: %w", err)
	}
	mod := bo.Modifier()
	modHi := uint32(mod >> 32)
	modLo := uint32(mod & 0xffffffff)
	for i, fd := range fds {
		if err := params.Add(fd, uint32(i), bo.Offset(i), bo.Stride(i), modHi, modLo); err != nil {
			params.Destroy()
			return nil, fmt.Errorf("add dmabuf plane %d: %w", i, err)
		}
	}
	wire, err := params.CreateImmed(int32(width), int32(height), uint32(format), 0)
	if err != nil {
		params.Destroy()
		return nil, fmt.Errorf("import dmabuf wire buffer: %w", err)
	}
	if err := params.Destroy(); err != nil {
		b.log.Warn("destroy dmabuf params", "err", err)
	}
	return wire, nil
}

func closeAll(fds []int) {
	for _, fd := range fds {
		unix.Close(fd)
	}
}

type dmaBuffer struct {
	wire   *client.Buffer
	bo     BufferObject
	fds    []int
	data   []byte
	width  int
	height int
	stride int
	format pixel.Format
	log    *slog.Logger
}

func (b *dmaBuffer) Wire() *client.Buffer { return b.wire }

func (b *dmaBuffer) Bytes() []byte { return b.data }

func (b *dmaBuffer) Width() int { return b.width }

func (b *dmaBuffer) Height() int { return b.height }

func (b *dmaBuffer) Stride() int { return b.stride }

func (b *dmaBuffer) Format() pixel.Format { return b.format }

// Destroy releases the wire buffer, closes every plane descriptor once and
// frees the buffer object together with its mapping.
func (b *dmaBuffer) Destroy() error {
	var firstErr error
	if b.wire != nil {
		if err := b.wire.Destroy(); err != nil {
			firstErr = fmt.Errorf("destroy wire buffer: %w", err)
		}
		b.wire = nil
	}
	closeAll(b.fds)
	b.fds = nil
	if b.bo != nil {
		if err := b.bo.Destroy(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("destroy buffer object: %w", err)
		}
		b.bo = nil
	}
	b.data = nil
	return firstErr
}
