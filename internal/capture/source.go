package capture

import (
	"fmt"

	"github.com/rajveermalviya/go-wayland/wayland/client"

	"github.com/declantsien/wescap/internal/buffer"
	"github.com/declantsien/wescap/internal/pixel"
)

// State tracks one capture source through a session generation.
type State int

const (
	// StateNegotiating : format or size not yet known
	StateNegotiating State = iota
	// StateReady : format and size known, no capture in flight
	StateReady
	// StateRequested : buffer posted, awaiting the outcome event
	StateRequested
	// StateCompleted : buffer holds a finished image
	StateCompleted
	// StateFailed : capture can never succeed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNegotiating:
		return "negotiating"
	case StateReady:
		return "ready"
	case StateRequested:
		return "requested"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// captureWire is the wire half of a capture source. The real implementation
// is the weston_capture_source_v1 proxy.
type captureWire interface {
	Capture(*client.Buffer) error
	Destroy() error
}

// Source is one negotiated capture channel bound to exactly one output. All
// mutation happens on the dispatch goroutine: inbound protocol events drive
// the handle* methods and the session driver calls issue.
type Source struct {
	session  *Session
	output   *Output
	wire     captureWire
	state    State
	format   pixel.Format
	width    int32
	height   int32
	buf      buffer.Buffer
	captures int
}

func newSource(s *Session, out *Output, wire captureWire) *Source {
	return &Source{session: s, output: out, wire: wire, state: StateNegotiating}
}

func (c *Source) name() string {
	return c.output.Name()
}

// handleFormat records the pixel format to allocate with. The compositor
// may re-send it at any time and the latest value wins at the next issue.
func (c *Source) handleFormat(fourcc uint32) {
	c.format = pixel.Format(fourcc)
	c.maybeReady()
}

// handleSize records the buffer dimensions. Non-positive dimensions are a
// protocol violation and poison the whole session.
func (c *Source) handleSize(width, height int32) {
	if width <= 0 || height <= 0 {
		c.session.fail(fmt.Errorf("%w: output %s reported size %dx%d", ErrProtocol, c.name(), width, height))
		return
	}
	c.width, c.height = width, height
	c.maybeReady()
}

func (c *Source) maybeReady() {
	if c.state == StateNegotiating && c.format != 0 && c.width > 0 && c.height > 0 {
		c.state = StateReady
	}
}

// issue allocates a fresh buffer and posts the capture request. Any buffer
// from an earlier generation is destroyed first, never reused.
func (c *Source) issue() error {
	if c.state != StateReady {
		return fmt.Errorf("output %s is not ready for capture (state %s)", c.name(), c.state)
	}
	if c.buf != nil {
		if err := c.buf.Destroy(); err != nil {
			c.session.log.Warn("destroy stale capture buffer", "output", c.name(), "err", err)
		}
		c.buf = nil
	}
	buf, err := c.session.backend.Allocate(int(c.width), int(c.height), c.format)
	if err != nil {
		return fmt.Errorf("allocate %dx%d %s buffer for %s: %w", c.width, c.height, c.format, c.name(), err)
	}
	if err := c.wire.Capture(buf.Wire()); err != nil {
		buf.Destroy()
		return fmt.Errorf("issue capture for %s: %w", c.name(), err)
	}
	c.buf = buf
	c.captures++
	c.state = StateRequested
	c.session.outstanding++
	return nil
}

// handleComplete settles a capture in flight. Events outside a capture are
// dropped so the outstanding counter can never underflow.
func (c *Source) handleComplete() {
	if c.state != StateRequested {
		c.session.log.Warn("complete event outside a capture", "output", c.name(), "state", c.state.String())
		return
	}
	c.state = StateCompleted
	c.session.outstanding--
}

// handleRetry returns the source to ready and flags the session for a
// global re-capture.
func (c *Source) handleRetry() {
	if c.state != StateRequested {
		c.session.log.Warn("retry event outside a capture", "output", c.name(), "state", c.state.String())
		return
	}
	c.state = StateReady
	c.session.outstanding--
	c.session.retry = true
}

// handleFailed marks the source and the whole session failed. The event is
// honored in any state because the compositor may reject a source right at
// creation, before any capture was issued; the counter only moves when a
// capture was actually in flight.
func (c *Source) handleFailed(msg string) {
	if msg == "" {
		msg = "no reason given"
	}
	c.session.fail(fmt.Errorf("%w: output %s: %s", ErrCaptureFailed, c.name(), msg))
	if c.state == StateRequested {
		c.session.outstanding--
	}
	c.state = StateFailed
}
