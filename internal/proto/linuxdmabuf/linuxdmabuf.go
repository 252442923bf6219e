// Generated by go-wayland-scanner
// https://github.com/rajveermalviya/go-wayland/cmd/go-wayland-scanner
// XML file : https://gitlab.freedesktop.org/wayland/wayland-protocols/-/raw/1.31/unstable/linux-dmabuf/linux-dmabuf-unstable-v1.xml
//
// linux_dmabuf_unstable_v1 Protocol Copyright:
//
// Copyright © 2014, 2015 Collabora, Ltd.
//
// Permission is hereby granted, free of charge, to any person obtaining a
// copy of this software and associated documentation files (the "Software"),
// to deal in the Software without restriction, including without limitation
// the rights to use, copy, modify, merge, publish, distribute, sublicense,
// and/or sell copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice (including the next
// paragraph) shall be included in all copies or substantial portions of the
// Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
// THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package linuxdmabuf

import (
	"github.com/rajveermalviya/go-wayland/wayland/client"
	"golang.org/x/sys/unix"
)

// ZwpLinuxDmabufV1InterfaceName is the name of the global announced in the
// registry.
const ZwpLinuxDmabufV1InterfaceName = "zwp_linux_dmabuf_v1"

// ZwpLinuxDmabufV1 : factory for creating dmabuf-based wl_buffers
//
// Following the interfaces from:
// https://www.khronos.org/registry/egl/extensions/EXT/EGL_EXT_image_dma_buf_import.txt
// and the Linux DRM sub-system's AddFb2 ioctl.
type ZwpLinuxDmabufV1 struct {
	client.BaseProxy
	formatHandler   ZwpLinuxDmabufV1FormatHandlerFunc
	modifierHandler ZwpLinuxDmabufV1ModifierHandlerFunc
}

// NewZwpLinuxDmabufV1 : factory for creating dmabuf-based wl_buffers
func NewZwpLinuxDmabufV1(ctx *client.Context) *ZwpLinuxDmabufV1 {
	zwpLinuxDmabufV1 := &ZwpLinuxDmabufV1{}
	ctx.Register(zwpLinuxDmabufV1)
	return zwpLinuxDmabufV1
}

// Destroy : unbind the factory
//
// Objects created through this interface remain valid.
func (i *ZwpLinuxDmabufV1) Destroy() error {
	defer i.Context().Unregister(i)
	const opcode = 0
	const _reqBufLen = 8
	var _reqBuf [_reqBufLen]byte
	l := 0
	client.PutUint32(_reqBuf[l:4], i.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(_reqBufLen<<16|opcode&0x0000ffff))
	l += 4
	err := i.Context().WriteMsg(_reqBuf[:], nil)
	return err
}

// CreateParams : create a temporary object for buffer parameters
//
// This temporary object is used to collect multiple dmabuf handles into a
// single batch to create a wl_buffer. It can only be used once and should
// be destroyed after a 'created' or 'failed' event has been received.
func (i *ZwpLinuxDmabufV1) CreateParams() (*ZwpLinuxBufferParamsV1, error) {
	paramsId := NewZwpLinuxBufferParamsV1(i.Context())
	const opcode = 1
	const _reqBufLen = 8 + 4
	var _reqBuf [_reqBufLen]byte
	l := 0
	client.PutUint32(_reqBuf[l:4], i.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(_reqBufLen<<16|opcode&0x0000ffff))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], paramsId.ID())
	l += 4
	err := i.Context().WriteMsg(_reqBuf[:], nil)
	return paramsId, err
}

// ZwpLinuxDmabufV1FormatEvent : supported buffer format
//
// This event advertises one buffer format that the server supports.
//
// Deprecated: starting from version 4 of this protocol, the modifier event
// carries format information as well.
type ZwpLinuxDmabufV1FormatEvent struct {
	Format uint32
}
type ZwpLinuxDmabufV1FormatHandlerFunc func(ZwpLinuxDmabufV1FormatEvent)

// SetFormatHandler : sets handler for ZwpLinuxDmabufV1FormatEvent
func (i *ZwpLinuxDmabufV1) SetFormatHandler(f ZwpLinuxDmabufV1FormatHandlerFunc) {
	i.formatHandler = f
}

// ZwpLinuxDmabufV1ModifierEvent : supported buffer format modifier
//
// This event advertises the formats that the server supports, along with
// the modifiers supported for each format.
type ZwpLinuxDmabufV1ModifierEvent struct {
	Format     uint32
	ModifierHi uint32
	ModifierLo uint32
}
type ZwpLinuxDmabufV1ModifierHandlerFunc func(ZwpLinuxDmabufV1ModifierEvent)

// SetModifierHandler : sets handler for ZwpLinuxDmabufV1ModifierEvent
func (i *ZwpLinuxDmabufV1) SetModifierHandler(f ZwpLinuxDmabufV1ModifierHandlerFunc) {
	i.modifierHandler = f
}

func (i *ZwpLinuxDmabufV1) Dispatch(opcode uint32, fd int, data []byte) {
	switch opcode {
	case 0:
		if i.formatHandler == nil {
			return
		}
		var e ZwpLinuxDmabufV1FormatEvent
		l := 0
		e.Format = client.Uint32(data[l : l+4])
		l += 4
		i.formatHandler(e)
	case 1:
		if i.modifierHandler == nil {
			return
		}
		var e ZwpLinuxDmabufV1ModifierEvent
		l := 0
		e.Format = client.Uint32(data[l : l+4])
		l += 4
		e.ModifierHi = client.Uint32(data[l : l+4])
		l += 4
		e.ModifierLo = client.Uint32(data[l : l+4])
		l += 4
		i.modifierHandler(e)
	}
}

// ZwpLinuxBufferParamsV1InterfaceName is the name of the interface as used
// in zwp_linux_dmabuf_v1.create_params.
const ZwpLinuxBufferParamsV1InterfaceName = "zwp_linux_buffer_params_v1"

// ZwpLinuxBufferParamsV1 : parameters for creating a dmabuf-based wl_buffer
//
// This temporary object collects dmabufs and other parameters that together
// form a single logical buffer.
type ZwpLinuxBufferParamsV1 struct {
	client.BaseProxy
	createdHandler ZwpLinuxBufferParamsV1CreatedHandlerFunc
	failedHandler  ZwpLinuxBufferParamsV1FailedHandlerFunc
}

// NewZwpLinuxBufferParamsV1 : parameters for creating a dmabuf-based wl_buffer
func NewZwpLinuxBufferParamsV1(ctx *client.Context) *ZwpLinuxBufferParamsV1 {
	zwpLinuxBufferParamsV1 := &ZwpLinuxBufferParamsV1{}
	ctx.Register(zwpLinuxBufferParamsV1)
	return zwpLinuxBufferParamsV1
}

// Destroy : delete this object, used or not
//
// Cleans up the temporary data sent to the server for dmabuf-based wl_buffer
// creation.
func (i *ZwpLinuxBufferParamsV1) Destroy() error {
	defer i.Context().Unregister(i)
	const opcode = 0
	const _reqBufLen = 8
	var _reqBuf [_reqBufLen]byte
	l := 0
	client.PutUint32(_reqBuf[l:4], i.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(_reqBufLen<<16|opcode&0x0000ffff))
	l += 4
	err := i.Context().WriteMsg(_reqBuf[:], nil)
	return err
}

// Add : add a dmabuf to the temporary set
//
// This request adds one dmabuf to the set in this object. The fd is
// transferred to the server, and the plane index, offset, stride and the
// modifier split into two 32-bit words describe how the data is laid out.
//
//	fd: dmabuf fd
//	planeIdx: plane index
//	offset: offset in bytes
//	stride: stride in bytes
//	modifierHi: high 32 bits of layout modifier
//	modifierLo: low 32 bits of layout modifier
func (i *ZwpLinuxBufferParamsV1) Add(fd int, planeIdx, offset, stride, modifierHi, modifierLo uint32) error {
	const opcode = 1
	const _reqBufLen = 8 + 4 + 4 + 4 + 4 + 4
	var _reqBuf [_reqBufLen]byte
	l := 0
	client.PutUint32(_reqBuf[l:4], i.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(_reqBufLen<<16|opcode&0x0000ffff))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], planeIdx)
	l += 4
	client.PutUint32(_reqBuf[l:l+4], offset)
	l += 4
	client.PutUint32(_reqBuf[l:l+4], stride)
	l += 4
	client.PutUint32(_reqBuf[l:l+4], modifierHi)
	l += 4
	client.PutUint32(_reqBuf[l:l+4], modifierLo)
	l += 4
	oob := unix.UnixRights(int(fd))
	err := i.Context().WriteMsg(_reqBuf[:], oob)
	return err
}

// Create : create a wl_buffer from the given dmabufs
//
// This asks for creation of a wl_buffer from the added dmabuf buffers. The
// result is reported through the 'created' or 'failed' event.
//
//	width: base plane width in pixels
//	height: base plane height in pixels
//	format: DRM_FORMAT code
//	flags: see enum flags
func (i *ZwpLinuxBufferParamsV1) Create(width, height int32, format, flags uint32) error {
	const opcode = 2
	const _reqBufLen = 8 + 4 + 4 + 4 + 4
	var _reqBuf [_reqBufLen]byte
	l := 0
	client.PutUint32(_reqBuf[l:4], i.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(_reqBufLen<<16|opcode&0x0000ffff))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(width))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(height))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], format)
	l += 4
	client.PutUint32(_reqBuf[l:l+4], flags)
	l += 4
	err := i.Context().WriteMsg(_reqBuf[:], nil)
	return err
}

// CreateImmed : immediately create a wl_buffer from the given dmabufs
//
// This asks for immediate creation of a wl_buffer by importing the added
// dmabufs. Incorrect parameters may lead to a protocol error instead of a
// 'failed' event.
//
//	width: base plane width in pixels
//	height: base plane height in pixels
//	format: DRM_FORMAT code
//	flags: see enum flags
func (i *ZwpLinuxBufferParamsV1) CreateImmed(width, height int32, format, flags uint32) (*client.Buffer, error) {
	bufferId := client.NewBuffer(i.Context())
	const opcode = 3
	const _reqBufLen = 8 + 4 + 4 + 4 + 4 + 4
	var _reqBuf [_reqBufLen]byte
	l := 0
	client.PutUint32(_reqBuf[l:4], i.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(_reqBufLen<<16|opcode&0x0000ffff))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], bufferId.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(width))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(height))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], format)
	l += 4
	client.PutUint32(_reqBuf[l:l+4], flags)
	l += 4
	err := i.Context().WriteMsg(_reqBuf[:], nil)
	return bufferId, err
}

// ZwpLinuxBufferParamsV1CreatedEvent : buffer creation succeeded
//
// This event indicates that the attempted buffer creation was successful.
// It provides the new wl_buffer's object id.
type ZwpLinuxBufferParamsV1CreatedEvent struct {
	BufferId uint32
}
type ZwpLinuxBufferParamsV1CreatedHandlerFunc func(ZwpLinuxBufferParamsV1CreatedEvent)

// SetCreatedHandler : sets handler for ZwpLinuxBufferParamsV1CreatedEvent
func (i *ZwpLinuxBufferParamsV1) SetCreatedHandler(f ZwpLinuxBufferParamsV1CreatedHandlerFunc) {
	i.createdHandler = f
}

// ZwpLinuxBufferParamsV1FailedEvent : buffer creation failed
//
// This event indicates that the attempted buffer creation has failed.
type ZwpLinuxBufferParamsV1FailedEvent struct{}
type ZwpLinuxBufferParamsV1FailedHandlerFunc func(ZwpLinuxBufferParamsV1FailedEvent)

// SetFailedHandler : sets handler for ZwpLinuxBufferParamsV1FailedEvent
func (i *ZwpLinuxBufferParamsV1) SetFailedHandler(f ZwpLinuxBufferParamsV1FailedHandlerFunc) {
	i.failedHandler = f
}

func (i *ZwpLinuxBufferParamsV1) Dispatch(opcode uint32, fd int, data []byte) {
	switch opcode {
	case 0:
		if i.createdHandler == nil {
			return
		}
		var e ZwpLinuxBufferParamsV1CreatedEvent
		l := 0
		e.BufferId = client.Uint32(data[l : l+4])
		l += 4
		i.createdHandler(e)
	case 1:
		if i.failedHandler == nil {
			return
		}
		var e ZwpLinuxBufferParamsV1FailedEvent
		i.failedHandler(e)
	}
}

type ZwpLinuxBufferParamsV1Error uint32

// ZwpLinuxBufferParamsV1Error :
const (
	// ZwpLinuxBufferParamsV1ErrorAlreadyUsed : the dmabuf_batch object has already been used to create a wl_buffer
	ZwpLinuxBufferParamsV1ErrorAlreadyUsed ZwpLinuxBufferParamsV1Error = 0
	// ZwpLinuxBufferParamsV1ErrorPlaneIdx : plane index out of bounds
	ZwpLinuxBufferParamsV1ErrorPlaneIdx ZwpLinuxBufferParamsV1Error = 1
	// ZwpLinuxBufferParamsV1ErrorPlaneSet : the plane index was already set
	ZwpLinuxBufferParamsV1ErrorPlaneSet ZwpLinuxBufferParamsV1Error = 2
	// ZwpLinuxBufferParamsV1ErrorIncomplete : missing or too many planes to create a buffer
	ZwpLinuxBufferParamsV1ErrorIncomplete ZwpLinuxBufferParamsV1Error = 3
	// ZwpLinuxBufferParamsV1ErrorInvalidFormat : format not supported
	ZwpLinuxBufferParamsV1ErrorInvalidFormat ZwpLinuxBufferParamsV1Error = 4
	// ZwpLinuxBufferParamsV1ErrorInvalidDimensions : invalid width or height
	ZwpLinuxBufferParamsV1ErrorInvalidDimensions ZwpLinuxBufferParamsV1Error = 5
	// ZwpLinuxBufferParamsV1ErrorOutOfBounds : offset + stride * height goes out of dmabuf bounds
	ZwpLinuxBufferParamsV1ErrorOutOfBounds ZwpLinuxBufferParamsV1Error = 6
	// ZwpLinuxBufferParamsV1ErrorInvalidWlBuffer : invalid wl_buffer resulted from importing dmabufs
	ZwpLinuxBufferParamsV1ErrorInvalidWlBuffer ZwpLinuxBufferParamsV1Error = 7
)

func (e ZwpLinuxBufferParamsV1Error) Name() string {
	switch e {
	case ZwpLinuxBufferParamsV1ErrorAlreadyUsed:
		return "already_used"
	case ZwpLinuxBufferParamsV1ErrorPlaneIdx:
		return "plane_idx"
	case ZwpLinuxBufferParamsV1ErrorPlaneSet:
		return "plane_set"
	case ZwpLinuxBufferParamsV1ErrorIncomplete:
		return "incomplete"
	case ZwpLinuxBufferParamsV1ErrorInvalidFormat:
		return "invalid_format"
	case ZwpLinuxBufferParamsV1ErrorInvalidDimensions:
		return "invalid_dimensions"
	case ZwpLinuxBufferParamsV1ErrorOutOfBounds:
		return "out_of_bounds"
	case ZwpLinuxBufferParamsV1ErrorInvalidWlBuffer:
		return "invalid_wl_buffer"
	default:
		return ""
	}
}

func (e ZwpLinuxBufferParamsV1Error) Value() string {
	switch e {
	case ZwpLinuxBufferParamsV1ErrorAlreadyUsed:
		return "0"
	case ZwpLinuxBufferParamsV1ErrorPlaneIdx:
		return "1"
	case ZwpLinuxBufferParamsV1ErrorPlaneSet:
		return "2"
	case ZwpLinuxBufferParamsV1ErrorIncomplete:
		return "3"
	case ZwpLinuxBufferParamsV1ErrorInvalidFormat:
		return "4"
	case ZwpLinuxBufferParamsV1ErrorInvalidDimensions:
		return "5"
	case ZwpLinuxBufferParamsV1ErrorOutOfBounds:
		return "6"
	case ZwpLinuxBufferParamsV1ErrorInvalidWlBuffer:
		return "7"
	default:
		return ""
	}
}

func (e ZwpLinuxBufferParamsV1Error) String() string {
	return e.Name() + "=" + e.Value()
}

type ZwpLinuxBufferParamsV1Flags uint32

// ZwpLinuxBufferParamsV1Flags :
const (
	// ZwpLinuxBufferParamsV1FlagsYInvert : contents are y-inverted
	ZwpLinuxBufferParamsV1FlagsYInvert ZwpLinuxBufferParamsV1Flags = 1
	// ZwpLinuxBufferParamsV1FlagsInterlaced : content is interlaced
	ZwpLinuxBufferParamsV1FlagsInterlaced ZwpLinuxBufferParamsV1Flags = 2
	// ZwpLinuxBufferParamsV1FlagsBottomFirst : bottom field first
	ZwpLinuxBufferParamsV1FlagsBottomFirst ZwpLinuxBufferParamsV1Flags = 4
)

func (e ZwpLinuxBufferParamsV1Flags) Name() string {
	switch e {
	case ZwpLinuxBufferParamsV1FlagsYInvert:
		return "y_invert"
	case ZwpLinuxBufferParamsV1FlagsInterlaced:
		return "interlaced"
	case ZwpLinuxBufferParamsV1FlagsBottomFirst:
		return "bottom_first"
	default:
		return ""
	}
}

func (e ZwpLinuxBufferParamsV1Flags) Value() string {
	switch e {
	case ZwpLinuxBufferParamsV1FlagsYInvert:
		return "1"
	case ZwpLinuxBufferParamsV1FlagsInterlaced:
		return "2"
	case ZwpLinuxBufferParamsV1FlagsBottomFirst:
		return "4"
	default:
		return ""
	}
}

func (e ZwpLinuxBufferParamsV1Flags) String() string {
	return e.Name() + "=" + e.Value()
}
