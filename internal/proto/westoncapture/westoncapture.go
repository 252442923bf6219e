// Generated by go-wayland-scanner
// https://github.com/rajveermalviya/go-wayland/cmd/go-wayland-scanner
// XML file : https://gitlab.freedesktop.org/wayland/weston/-/raw/13.0.0/protocol/weston-output-capture.xml
//
// weston_output_capture_v1 Protocol Copyright:
//
// Copyright 2022 Collabora, Ltd.
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

package westoncapture

import "github.com/rajveermalviya/go-wayland/wayland/client"

// WestonCaptureV1InterfaceName is the name of the global announced in the
// registry.
const WestonCaptureV1InterfaceName = "weston_capture_v1"

// WestonCaptureV1 : image capturing factory
//
// This global factory interface creates weston_capture_source_v1 objects,
// one per output per pixel source. A capture source delivers output images
// into client provided buffers.
type WestonCaptureV1 struct {
	client.BaseProxy
}

// NewWestonCaptureV1 : image capturing factory
func NewWestonCaptureV1(ctx *client.Context) *WestonCaptureV1 {
	westonCaptureV1 := &WestonCaptureV1{}
	ctx.Register(westonCaptureV1)
	return westonCaptureV1
}

// Destroy : unbind from the capture factory
//
// Affects no other protocol objects in any way.
func (i *WestonCaptureV1) Destroy() error {
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

// Create : create an output capture source
//
// This creates a weston_capture_source_v1 object for the given output and
// pixel source. If the combination of output and source is not supported,
// the source will emit the failed event and all captures on it will fail.
//
//	output: the output to capture from
//	source: the pixel source to capture
func (i *WestonCaptureV1) Create(output *client.Output, source uint32) (*WestonCaptureSourceV1, error) {
	captureSourceNewId := NewWestonCaptureSourceV1(i.Context())
	const opcode = 1
	const _reqBufLen = 8 + 4 + 4 + 4
	var _reqBuf [_reqBufLen]byte
	l := 0
	client.PutUint32(_reqBuf[l:4], i.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(_reqBufLen<<16|opcode&0x0000ffff))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], output.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(source))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], captureSourceNewId.ID())
	l += 4
	err := i.Context().WriteMsg(_reqBuf[:], nil)
	return captureSourceNewId, err
}

func (i *WestonCaptureV1) Dispatch(opcode uint32, fd int, data []byte) {}

type WestonCaptureV1Error uint32

// WestonCaptureV1Error :
const (
	// WestonCaptureV1ErrorInvalidSource : invalid source enum value
	WestonCaptureV1ErrorInvalidSource WestonCaptureV1Error = 0
)

func (e WestonCaptureV1Error) Name() string {
	switch e {
	case WestonCaptureV1ErrorInvalidSource:
		return "invalid_source"
	default:
		return ""
	}
}

func (e WestonCaptureV1Error) Value() string {
	switch e {
	case WestonCaptureV1ErrorInvalidSource:
		return "0"
	default:
		return ""
	}
}

func (e WestonCaptureV1Error) String() string {
	return e.Name() + "=" + e.Value()
}

type WestonCaptureV1Source uint32

// WestonCaptureV1Source : source of pixels to capture
const (
	// WestonCaptureV1SourceWriteback : use hardware writeback
	WestonCaptureV1SourceWriteback WestonCaptureV1Source = 0
	// WestonCaptureV1SourceFramebuffer : copy from framebuffer, desktop area
	WestonCaptureV1SourceFramebuffer WestonCaptureV1Source = 1
	// WestonCaptureV1SourceFullFramebuffer : copy whole framebuffer, including borders
	WestonCaptureV1SourceFullFramebuffer WestonCaptureV1Source = 2
	// WestonCaptureV1SourceBlending : copy from blending space
	WestonCaptureV1SourceBlending WestonCaptureV1Source = 3
)

func (e WestonCaptureV1Source) Name() string {
	switch e {
	case WestonCaptureV1SourceWriteback:
		return "writeback"
	case WestonCaptureV1SourceFramebuffer:
		return "framebuffer"
	case WestonCaptureV1SourceFullFramebuffer:
		return "full_framebuffer"
	case WestonCaptureV1SourceBlending:
		return "blending"
	default:
		return ""
	}
}

func (e WestonCaptureV1Source) Value() string {
	switch e {
	case WestonCaptureV1SourceWriteback:
		return "0"
	case WestonCaptureV1SourceFramebuffer:
		return "1"
	case WestonCaptureV1SourceFullFramebuffer:
		return "2"
	case WestonCaptureV1SourceBlending:
		return "3"
	default:
		return ""
	}
}

func (e WestonCaptureV1Source) String() string {
	return e.Name() + "=" + e.Value()
}

// WestonCaptureSourceV1InterfaceName is the name of the interface as used in
// weston_capture_v1.create.
const WestonCaptureSourceV1InterfaceName = "weston_capture_source_v1"

// WestonCaptureSourceV1 : an image capture source
//
// An object representing image capturing functionality for a single source.
// When created, it sends the initial events if and only if the output still
// exists and the specified pixel source is available on the output.
type WestonCaptureSourceV1 struct {
	client.BaseProxy
	formatHandler   WestonCaptureSourceV1FormatHandlerFunc
	sizeHandler     WestonCaptureSourceV1SizeHandlerFunc
	completeHandler WestonCaptureSourceV1CompleteHandlerFunc
	retryHandler    WestonCaptureSourceV1RetryHandlerFunc
	failedHandler   WestonCaptureSourceV1FailedHandlerFunc
}

// NewWestonCaptureSourceV1 : an image capture source
func NewWestonCaptureSourceV1(ctx *client.Context) *WestonCaptureSourceV1 {
	westonCaptureSourceV1 := &WestonCaptureSourceV1{}
	ctx.Register(westonCaptureSourceV1)
	return westonCaptureSourceV1
}

// Destroy : destroy the capture source
//
// If a capture is on-going on this object, pending image data is discarded.
func (i *WestonCaptureSourceV1) Destroy() error {
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

// Capture : capture an image
//
// If the given wl_buffer is compatible, the associated output will go
// through a repaint some time after this request has been processed, and
// that repaint will execute the capture. Once the capture is complete, the
// complete event is emitted. If the buffer is not compatible, the retry
// event is emitted together with new format and size events the client
// should use to allocate a new buffer.
//
//	buffer: the buffer to capture into
func (i *WestonCaptureSourceV1) Capture(buffer *client.Buffer) error {
	const opcode = 1
	const _reqBufLen = 8 + 4
	var _reqBuf [_reqBufLen]byte
	l := 0
	client.PutUint32(_reqBuf[l:4], i.ID())
	l += 4
	client.PutUint32(_reqBuf[l:l+4], uint32(_reqBufLen<<16|opcode&0x0000ffff))
	l += 4
	client.PutUint32(_reqBuf[l:l+4], buffer.ID())
	l += 4
	err := i.Context().WriteMsg(_reqBuf[:], nil)
	return err
}

// WestonCaptureSourceV1FormatEvent : buffer format needed for captures
//
// This event delivers the pixel format that should be used for the image
// buffer. Older format events are obsoleted by the latest one.
type WestonCaptureSourceV1FormatEvent struct {
	DrmFormat uint32
}
type WestonCaptureSourceV1FormatHandlerFunc func(WestonCaptureSourceV1FormatEvent)

// SetFormatHandler : sets handler for WestonCaptureSourceV1FormatEvent
func (i *WestonCaptureSourceV1) SetFormatHandler(f WestonCaptureSourceV1FormatHandlerFunc) {
	i.formatHandler = f
}

// WestonCaptureSourceV1SizeEvent : dimensions needed for captures
//
// This event delivers the size that should be used for the image buffer.
// Older size events are obsoleted by the latest one. The client should
// allocate buffers with these dimensions exactly.
type WestonCaptureSourceV1SizeEvent struct {
	Width  int32
	Height int32
}
type WestonCaptureSourceV1SizeHandlerFunc func(WestonCaptureSourceV1SizeEvent)

// SetSizeHandler : sets handler for WestonCaptureSourceV1SizeEvent
func (i *WestonCaptureSourceV1) SetSizeHandler(f WestonCaptureSourceV1SizeHandlerFunc) {
	i.sizeHandler = f
}

// WestonCaptureSourceV1CompleteEvent : capture has completed
//
// The capture has been completed and the buffer contains the image.
type WestonCaptureSourceV1CompleteEvent struct{}
type WestonCaptureSourceV1CompleteHandlerFunc func(WestonCaptureSourceV1CompleteEvent)

// SetCompleteHandler : sets handler for WestonCaptureSourceV1CompleteEvent
func (i *WestonCaptureSourceV1) SetCompleteHandler(f WestonCaptureSourceV1CompleteHandlerFunc) {
	i.completeHandler = f
}

// WestonCaptureSourceV1RetryEvent : retry capture with a different buffer
//
// The capture was not executed because the buffer was not compatible. The
// client should retry with a buffer matching the latest format and size
// events.
type WestonCaptureSourceV1RetryEvent struct{}
type WestonCaptureSourceV1RetryHandlerFunc func(WestonCaptureSourceV1RetryEvent)

// SetRetryHandler : sets handler for WestonCaptureSourceV1RetryEvent
func (i *WestonCaptureSourceV1) SetRetryHandler(f WestonCaptureSourceV1RetryHandlerFunc) {
	i.retryHandler = f
}

// WestonCaptureSourceV1FailedEvent : capture failed
//
// The capture cannot succeed, with a human readable reason when available.
type WestonCaptureSourceV1FailedEvent struct {
	Msg string
}
type WestonCaptureSourceV1FailedHandlerFunc func(WestonCaptureSourceV1FailedEvent)

// SetFailedHandler : sets handler for WestonCaptureSourceV1FailedEvent
func (i *WestonCaptureSourceV1) SetFailedHandler(f WestonCaptureSourceV1FailedHandlerFunc) {
	i.failedHandler = f
}

func (i *WestonCaptureSourceV1) Dispatch(opcode uint32, fd int, data []byte) {
	switch opcode {
	case 0:
		if i.formatHandler == nil {
			return
		}
		var e WestonCaptureSourceV1FormatEvent
		l := 0
		e.DrmFormat = client.Uint32(data[l : l+4])
		l += 4
		i.formatHandler(e)
	case 1:
		if i.sizeHandler == nil {
			return
		}
		var e WestonCaptureSourceV1SizeEvent
		l := 0
		e.Width = int32(client.Uint32(data[l : l+4]))
		l += 4
		e.Height = int32(client.Uint32(data[l : l+4]))
		l += 4
		i.sizeHandler(e)
	case 2:
		if i.completeHandler == nil {
			return
		}
		var e WestonCaptureSourceV1CompleteEvent
		i.completeHandler(e)
	case 3:
		if i.retryHandler == nil {
			return
		}
		var e WestonCaptureSourceV1RetryEvent
		i.retryHandler(e)
	case 4:
		if i.failedHandler == nil {
			return
		}
		var e WestonCaptureSourceV1FailedEvent
		l := 0
		msgLen := client.PaddedLen(int(client.Uint32(data[l : l+4])))
		l += 4
		e.Msg = client.String(data[l : l+msgLen])
		l += msgLen
		i.failedHandler(e)
	}
}
