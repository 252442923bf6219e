// Package buffer provides the pixel buffers capture requests render into.
// Two backends exist: CPU shared memory posted over wl_shm, and GPU dma-buf
// posted over zwp_linux_dmabuf_v1. A session picks one backend at
// construction and allocates every capture buffer through it.
package buffer

import (
	"fmt"
	"strings"

	"github.com/rajveermalviya/go-wayland/wayland/client"

	"github.com/declantsien/wescap/internal/pixel"
)

// Kind selects the buffer backend.
type Kind int

const (
	KindShm Kind = iota
	KindDma
)

func (k Kind) String() string {
	switch k {
	case KindShm:
		return "shm"
	case KindDma:
		return "dma"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the numeric flag values as well as the names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "shm":
		return KindShm, nil
	case "1", "dma", "dmabuf", "dma-buf":
		return KindDma, nil
	}
	return 0, fmt.Errorf("unknown buffer type %q (want shm or dma)", s)
}

// Buffer is one allocated capture buffer. The wire object is what gets
// attached to a capture request; Bytes is the local view over the same
// pixels.
type Buffer interface {
	Wire() *client.Buffer
	Bytes() []byte
	Width() int
	Height() int
	Stride() int
	Format() pixel.Format
	Destroy() error
}

// Backend allocates capture buffers. Implementations release all partially
// acquired resources when Allocate fails.
type Backend interface {
	Kind() Kind
	Allocate(width, height int, format pixel.Format) (Buffer, error)
}
