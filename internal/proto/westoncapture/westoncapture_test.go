package westoncapture

import (
	"encoding/binary"
	"testing"
)

func putUint32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

func TestDispatchFormatEvent(t *testing.T) {
	src := &WestonCaptureSourceV1{}
	var got uint32
	src.SetFormatHandler(func(e WestonCaptureSourceV1FormatEvent) {
		got = e.DrmFormat
	})

	data := make([]byte, 4)
	putUint32(data, 0x34325258) // 'XR24'
	src.Dispatch(0, -1, data)

	if got != 0x34325258 {
		t.Fatalf("expected drm format 0x34325258, got %#x", got)
	}
}

func TestDispatchSizeEvent(t *testing.T) {
	src := &WestonCaptureSourceV1{}
	var w, h int32
	src.SetSizeHandler(func(e WestonCaptureSourceV1SizeEvent) {
		w, h = e.Width, e.Height
	})

	data := make([]byte, 8)
	putUint32(data[0:], 1920)
	putUint32(data[4:], 1080)
	src.Dispatch(1, -1, data)

	if w != 1920 || h != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", w, h)
	}
}

func TestDispatchOutcomeEvents(t *testing.T) {
	src := &WestonCaptureSourceV1{}
	var complete, retry int
	src.SetCompleteHandler(func(WestonCaptureSourceV1CompleteEvent) { complete++ })
	src.SetRetryHandler(func(WestonCaptureSourceV1RetryEvent) { retry++ })

	src.Dispatch(2, -1, nil)
	src.Dispatch(3, -1, nil)
	src.Dispatch(3, -1, nil)

	if complete != 1 || retry != 2 {
		t.Fatalf("expected 1 complete and 2 retries, got %d and %d", complete, retry)
	}
}

func TestDispatchFailedEvent(t *testing.T) {
	src := &WestonCaptureSourceV1{}
	var msg string
	var fired bool
	src.SetFailedHandler(func(e WestonCaptureSourceV1FailedEvent) {
		fired = true
		msg = e.Msg
	})

	// Wire strings carry a length word counting the NUL terminator, then the
	// bytes padded to a 4-byte boundary. "output gone" is 11 chars + NUL = 12.
	data := make([]byte, 4+12)
	putUint32(data, 12)
	copy(data[4:], "output gone\x00")
	src.Dispatch(4, -1, data)

	if !fired {
		t.Fatalf("failed handler did not fire")
	}
	if msg != "output gone" {
		t.Fatalf("expected message %q, got %q", "output gone", msg)
	}
}

func TestDispatchFailedEventNullMessage(t *testing.T) {
	src := &WestonCaptureSourceV1{}
	var msg string
	var fired bool
	src.SetFailedHandler(func(e WestonCaptureSourceV1FailedEvent) {
		fired = true
		msg = e.Msg
	})

	// A null string is encoded as length 0 with no bytes.
	data := make([]byte, 4)
	putUint32(data, 0)
	src.Dispatch(4, -1, data)

	if !fired {
		t.Fatalf("failed handler did not fire")
	}
	if msg != "" {
		t.Fatalf("expected empty message, got %q", msg)
	}
}

func TestDispatchWithoutHandlersIsSafe(t *testing.T) {
	src := &WestonCaptureSourceV1{}
	data := make([]byte, 8)
	for opcode := uint32(0); opcode <= 4; opcode++ {
		src.Dispatch(opcode, -1, data)
	}
}

func TestSourceEnumNames(t *testing.T) {
	if got := WestonCaptureV1SourceFramebuffer.String(); got != "framebuffer=1" {
		t.Fatalf("expected framebuffer=1, got %q", got)
	}
	if got := WestonCaptureV1SourceWriteback.String(); got != "writeback=0" {
		t.Fatalf("expected writeback=0, got %q", got)
	}
}
