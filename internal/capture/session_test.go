package capture

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rajveermalviya/go-wayland/wayland/client"

	"github.com/declantsien/wescap/internal/buffer"
	"github.com/declantsien/wescap/internal/pixel"
)

type fakeBuffer struct {
	width    int
	height   int
	format   pixel.Format
	pix      []byte
	destroys int
}

func (b *fakeBuffer) Wire() *client.Buffer { return nil }

func (b *fakeBuffer) Bytes() []byte { return b.pix }

func (b *fakeBuffer) Width() int { return b.width }

func (b *fakeBuffer) Height() int { return b.height }

func (b *fakeBuffer) Stride() int { return b.width * 4 }

func (b *fakeBuffer) Format() pixel.Format { return b.format }

func (b *fakeBuffer) Destroy() error {
	b.destroys++
	return nil
}

type fakeBackend struct {
	allocated []*fakeBuffer
	fail      error
}

func (f *fakeBackend) Kind() buffer.Kind { return buffer.KindShm }

func (f *fakeBackend) Allocate(width, height int, format pixel.Format) (buffer.Buffer, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	b := &fakeBuffer{width: width, height: height, format: format, pix: make([]byte, width*height*4)}
	f.allocated = append(f.allocated, b)
	// tag the first pixel with the allocation ordinal, so tests can tell
	// which generation's buffer survived
	b.pix[0] = byte(len(f.allocated))
	return b, nil
}

type fakeWire struct {
	captures    int
	destroyed   bool
	failCapture error
}

func (w *fakeWire) Capture(*client.Buffer) error {
	if w.failCapture != nil {
		return w.failCapture
	}
	w.captures++
	return nil
}

func (w *fakeWire) Destroy() error {
	w.destroyed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, outputs int) (*Session, []*fakeWire, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	s := &Session{backend: backend, log: discardLogger()}
	wires := make([]*fakeWire, 0, outputs)
	for i := 0; i < outputs; i++ {
		w := &fakeWire{}
		s.sources = append(s.sources, newSource(s, &Output{ordinal: i}, w))
		wires = append(wires, w)
	}
	return s, wires, backend
}

func negotiateAll(s *Session, width, height int32) {
	for _, src := range s.sources {
		src.handleFormat(uint32(pixel.XRGB8888))
		src.handleSize(width, height)
	}
}

// script replaces the session's dispatch with a queue of event batches, one
// batch per dispatch call.
func script(s *Session, batches ...func()) {
	i := 0
	s.dispatch = func() error {
		if i >= len(batches) {
			return errors.New("dispatch called with no more scripted events")
		}
		batch := batches[i]
		i++
		batch()
		return nil
	}
}

func TestSessionAllOutputsComplete(t *testing.T) {
	s, wires, backend := newTestSession(t, 2)
	negotiateAll(s, 8, 4)
	script(s, func() {
		s.sources[0].handleComplete()
		s.sources[1].handleComplete()
	})

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.outstanding != 0 {
		t.Fatalf("outstanding = %d, want 0", s.outstanding)
	}
	for i, w := range wires {
		if w.captures != 1 {
			t.Errorf("wire %d captures = %d, want 1", i, w.captures)
		}
	}
	if len(backend.allocated) != 2 {
		t.Fatalf("allocated %d buffers, want 2", len(backend.allocated))
	}

	inputs, err := s.Inputs()
	if err != nil {
		t.Fatalf("Inputs: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("got %d inputs, want 2", len(inputs))
	}
	if inputs[0].Name != "output-0" || inputs[1].Name != "output-1" {
		t.Errorf("input names = %q, %q", inputs[0].Name, inputs[1].Name)
	}
	if inputs[0].Width != 8 || inputs[0].Height != 4 || inputs[0].Stride != 32 {
		t.Errorf("input geometry = %dx%d stride %d", inputs[0].Width, inputs[0].Height, inputs[0].Stride)
	}
}

func TestSessionNegotiationOrderIrrelevant(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	src := s.sources[0]

	src.handleSize(4, 4)
	if src.state != StateNegotiating {
		t.Fatalf("state after size only = %s, want negotiating", src.state)
	}
	src.handleFormat(uint32(pixel.ARGB8888))
	if src.state != StateReady {
		t.Fatalf("state after size+format = %s, want ready", src.state)
	}

	// a re-sent format must not disturb a settled state
	src.handleFormat(uint32(pixel.XRGB8888))
	if src.state != StateReady {
		t.Fatalf("state after format re-send = %s, want ready", src.state)
	}
	if src.format != pixel.XRGB8888 {
		t.Fatalf("format = %s, want the latest announcement", src.format)
	}
}

func TestSessionFailureAbortsOtherCaptures(t *testing.T) {
	s, _, _ := newTestSession(t, 2)
	negotiateAll(s, 4, 4)
	// only one batch: source 0 fails while source 1 is still in flight.
	// Run must abort instead of dispatching again.
	script(s, func() {
		s.sources[0].handleFailed("hardware says no")
	})

	err := s.Run()
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("Run error = %v, want ErrCaptureFailed", err)
	}
	if s.sources[0].state != StateFailed {
		t.Errorf("failed source state = %s", s.sources[0].state)
	}
	if s.sources[1].state != StateRequested {
		t.Errorf("in-flight source state = %s", s.sources[1].state)
	}
}

func TestSessionFailedBeforeFirstCapture(t *testing.T) {
	s, wires, _ := newTestSession(t, 1)
	negotiateAll(s, 4, 4)

	// the compositor may reject a source right after create, before any
	// capture request went out
	s.sources[0].handleFailed("")

	if s.outstanding != 0 {
		t.Fatalf("outstanding = %d after pre-capture failure, want 0", s.outstanding)
	}
	err := s.Run()
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("Run error = %v, want ErrCaptureFailed", err)
	}
	if wires[0].captures != 0 {
		t.Fatalf("captures issued after failure = %d, want 0", wires[0].captures)
	}
}

func TestSessionCounterNeverNegative(t *testing.T) {
	s, wires, _ := newTestSession(t, 1)
	negotiateAll(s, 2, 2)
	// duplicate completes and a stale retry in one flush: the extras must
	// be dropped, not counted
	script(s, func() {
		s.sources[0].handleComplete()
		s.sources[0].handleComplete()
		s.sources[0].handleRetry()
	})

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.outstanding != 0 {
		t.Fatalf("outstanding = %d, want 0", s.outstanding)
	}
	if s.retry {
		t.Fatal("stale retry event set the session retry flag")
	}
	if wires[0].captures != 1 {
		t.Fatalf("captures = %d, want 1", wires[0].captures)
	}
}

func TestSessionGlobalRetryRecapturesEveryOutput(t *testing.T) {
	s, wires, backend := newTestSession(t, 2)
	negotiateAll(s, 4, 2)
	script(s,
		func() {
			// output 1 settles but output 0 wants another pass
			s.sources[0].handleRetry()
			s.sources[1].handleComplete()
		},
		func() {
			s.sources[0].handleComplete()
			s.sources[1].handleComplete()
		},
	)

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, w := range wires {
		if w.captures != 2 {
			t.Errorf("wire %d captures = %d, want 2 (global re-capture)", i, w.captures)
		}
	}
	if len(backend.allocated) != 4 {
		t.Fatalf("allocated %d buffers, want 4", len(backend.allocated))
	}
	for i := 0; i < 2; i++ {
		if backend.allocated[i].destroys != 1 {
			t.Errorf("generation 1 buffer %d destroyed %d times, want 1", i, backend.allocated[i].destroys)
		}
	}
}

func TestSessionRetryThenCompleteOnTinyOutput(t *testing.T) {
	s, wires, backend := newTestSession(t, 1)
	negotiateAll(s, 1, 1)
	script(s,
		func() { s.sources[0].handleRetry() },
		func() { s.sources[0].handleComplete() },
	)

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if wires[0].captures != 2 {
		t.Fatalf("captures = %d, want exactly 2", wires[0].captures)
	}
	inputs, err := s.Inputs()
	if err != nil {
		t.Fatalf("Inputs: %v", err)
	}
	// the surviving pixel comes from the second allocation
	if inputs[0].Pix[0] != 2 {
		t.Fatalf("stitch input carries buffer %d, want the retry generation's", inputs[0].Pix[0])
	}
	if backend.allocated[0].destroys != 1 {
		t.Fatalf("first generation buffer destroys = %d, want 1", backend.allocated[0].destroys)
	}
}

func TestSessionRetryLimit(t *testing.T) {
	s, wires, _ := newTestSession(t, 1)
	s.retryLimit = 1
	negotiateAll(s, 2, 2)
	script(s,
		func() { s.sources[0].handleRetry() },
		func() { s.sources[0].handleRetry() },
	)

	err := s.Run()
	if !errors.Is(err, ErrRetryLimit) {
		t.Fatalf("Run error = %v, want ErrRetryLimit", err)
	}
	if wires[0].captures != 2 {
		t.Fatalf("captures = %d, want 2 (initial + one retry)", wires[0].captures)
	}
}

func TestSessionRetryUnboundedByDefault(t *testing.T) {
	s, wires, _ := newTestSession(t, 1)
	negotiateAll(s, 2, 2)
	script(s,
		func() { s.sources[0].handleRetry() },
		func() { s.sources[0].handleRetry() },
		func() { s.sources[0].handleRetry() },
		func() { s.sources[0].handleComplete() },
	)

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if wires[0].captures != 4 {
		t.Fatalf("captures = %d, want 4", wires[0].captures)
	}
}

func TestSessionDispatchErrorPropagates(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	negotiateAll(s, 2, 2)
	boom := errors.New("connection reset")
	s.dispatch = func() error { return boom }

	if err := s.Run(); !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want the transport error", err)
	}
}

func TestSessionRefusesUnnegotiatedSource(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	s.sources[0].handleFormat(uint32(pixel.XRGB8888))
	// no size event ever arrived

	if err := s.Run(); !errors.Is(err, ErrProtocol) {
		t.Fatalf("Run error = %v, want ErrProtocol", err)
	}
}

func TestSessionRejectsNonPositiveSize(t *testing.T) {
	for _, tc := range [][2]int32{{0, 100}, {100, 0}, {-1, 100}, {100, -1}} {
		s, _, _ := newTestSession(t, 1)
		s.sources[0].handleFormat(uint32(pixel.XRGB8888))
		s.sources[0].handleSize(tc[0], tc[1])

		if s.failure == nil {
			t.Fatalf("size %dx%d accepted", tc[0], tc[1])
		}
		if err := s.Run(); !errors.Is(err, ErrProtocol) {
			t.Fatalf("Run error for size %dx%d = %v, want ErrProtocol", tc[0], tc[1], err)
		}
	}
}

func TestSessionAllocationFailure(t *testing.T) {
	s, wires, backend := newTestSession(t, 1)
	negotiateAll(s, 4, 4)
	backend.fail = errors.New("out of shm")

	if err := s.Run(); !errors.Is(err, backend.fail) {
		t.Fatalf("Run error = %v, want the allocation error", err)
	}
	if wires[0].captures != 0 {
		t.Fatalf("capture issued without a buffer")
	}
}

func TestSessionCaptureRequestFailureDestroysBuffer(t *testing.T) {
	s, wires, backend := newTestSession(t, 1)
	negotiateAll(s, 4, 4)
	wires[0].failCapture = errors.New("write: broken pipe")

	if err := s.Run(); !errors.Is(err, wires[0].failCapture) {
		t.Fatalf("Run error = %v, want the capture error", err)
	}
	if len(backend.allocated) != 1 || backend.allocated[0].destroys != 1 {
		t.Fatalf("orphaned buffer not destroyed")
	}
}

func TestSessionInputsBeforeCompletion(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	negotiateAll(s, 2, 2)

	if _, err := s.Inputs(); err == nil {
		t.Fatal("Inputs succeeded before any capture completed")
	}
}

func TestSessionClose(t *testing.T) {
	s, wires, backend := newTestSession(t, 2)
	negotiateAll(s, 2, 2)
	script(s, func() {
		s.sources[0].handleComplete()
		s.sources[1].handleComplete()
	})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	s.Close()
	s.Close() // second close must be a no-op

	for i, w := range wires {
		if !w.destroyed {
			t.Errorf("wire %d not destroyed", i)
		}
	}
	for i, b := range backend.allocated {
		if b.destroys != 1 {
			t.Errorf("buffer %d destroys = %d, want 1", i, b.destroys)
		}
	}
}

func TestParseSourceKind(t *testing.T) {
	cases := []struct {
		in   string
		want SourceKind
		ok   bool
	}{
		{"0", SourceFramebuffer, true},
		{"framebuffer", SourceFramebuffer, true},
		{"1", SourceWriteback, true},
		{"writeback", SourceWriteback, true},
		{"2", 0, false},
		{"screen", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseSourceKind(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseSourceKind(%q) error = %v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseSourceKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSourceKindWireValues(t *testing.T) {
	// the protocol numbers the enum the other way around from the flag
	if v := uint32(SourceFramebuffer.wire()); v != 1 {
		t.Errorf("framebuffer wire value = %d, want 1", v)
	}
	if v := uint32(SourceWriteback.wire()); v != 0 {
		t.Errorf("writeback wire value = %d, want 0", v)
	}
}

func TestOutputName(t *testing.T) {
	named := &Output{ordinal: 3, name: "DP-1"}
	if got := named.Name(); got != "DP-1" {
		t.Errorf("Name() = %q, want DP-1", got)
	}
	anon := &Output{ordinal: 3}
	if got := anon.Name(); got != "output-3" {
		t.Errorf("Name() = %q, want output-3", got)
	}
}
