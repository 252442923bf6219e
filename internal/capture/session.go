package capture

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/declantsien/wescap/internal/buffer"
	"github.com/declantsien/wescap/internal/proto/westoncapture"
	"github.com/declantsien/wescap/internal/stitch"
)

var (
	// ErrNoOutputs means the compositor announced no wl_output globals.
	ErrNoOutputs = errors.New("no outputs discovered")
	// ErrCaptureFailed wraps a failed event from the compositor.
	ErrCaptureFailed = errors.New("capture failed")
	// ErrProtocol marks compositor behavior the protocol forbids.
	ErrProtocol = errors.New("capture protocol error")
	// ErrRetryLimit means the scene never stabilized within the allowed
	// number of re-captures.
	ErrRetryLimit = errors.New("retry limit exceeded")
)

// SourceKind selects which pixels of an output the compositor hands over.
type SourceKind int

const (
	// SourceFramebuffer captures the final composited frame.
	SourceFramebuffer SourceKind = iota
	// SourceWriteback captures through the display writeback engine.
	SourceWriteback
)

func (k SourceKind) String() string {
	switch k {
	case SourceFramebuffer:
		return "framebuffer"
	case SourceWriteback:
		return "writeback"
	}
	return fmt.Sprintf("source(%d)", int(k))
}

// ParseSourceKind accepts the numeric flag values as well as the names.
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "0", "framebuffer":
		return SourceFramebuffer, nil
	case "1", "writeback":
		return SourceWriteback, nil
	}
	return 0, fmt.Errorf("unknown source type %q (want 0/framebuffer or 1/writeback)", s)
}

// wire translates to the protocol enum, which numbers writeback 0 and
// framebuffer 1, the reverse of the flag values.
func (k SourceKind) wire() westoncapture.WestonCaptureV1Source {
	if k == SourceWriteback {
		return westoncapture.WestonCaptureV1SourceWriteback
	}
	return westoncapture.WestonCaptureV1SourceFramebuffer
}

// Options configures a capture session.
type Options struct {
	// Source picks the capture tap point on each output.
	Source SourceKind
	// Backend allocates the buffers captures land in.
	Backend buffer.Backend
	// RetryLimit caps how many times an unstable scene is re-captured.
	// Zero means keep retrying until it settles.
	RetryLimit int
	Log        *slog.Logger
}

// Session captures every output of one connection in lockstep. A capture
// generation posts one buffer per output and waits until all of them settle;
// if any source asks for a retry the whole generation is re-issued so the
// stitched image is a single consistent moment.
type Session struct {
	backend     buffer.Backend
	sources     []*Source
	outstanding int
	retry       bool
	failure     error
	retryLimit  int
	dispatch    func() error
	log         *slog.Logger
}

// NewSession creates one capture source per discovered output and performs
// the roundtrip that fills in output properties and the per-source format
// and size, so Run can allocate immediately.
func NewSession(conn *Conn, opts Options) (*Session, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Backend == nil {
		return nil, errors.New("no buffer backend configured")
	}
	if len(conn.outputs) == 0 {
		return nil, ErrNoOutputs
	}
	s := &Session{
		backend:    opts.Backend,
		retryLimit: opts.RetryLimit,
		dispatch:   conn.ctx.Dispatch,
		log:        log,
	}
	for _, out := range conn.outputs {
		wire, err := conn.capture.Create(out.wl, uint32(opts.Source.wire()))
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("create capture source for %s: %w", out.Name(), err)
		}
		src := newSource(s, out, wire)
		wire.SetFormatHandler(func(e westoncapture.WestonCaptureSourceV1FormatEvent) {
			src.handleFormat(e.DrmFormat)
		})
		wire.SetSizeHandler(func(e westoncapture.WestonCaptureSourceV1SizeEvent) {
			src.handleSize(e.Width, e.Height)
		})
		wire.SetCompleteHandler(func(westoncapture.WestonCaptureSourceV1CompleteEvent) {
			src.handleComplete()
		})
		wire.SetRetryHandler(func(westoncapture.WestonCaptureSourceV1RetryEvent) {
			src.handleRetry()
		})
		wire.SetFailedHandler(func(e westoncapture.WestonCaptureSourceV1FailedEvent) {
			src.handleFailed(e.Msg)
		})
		s.sources = append(s.sources, src)
	}
	if err := conn.Roundtrip(); err != nil {
		s.Close()
		return nil, fmt.Errorf("introspect capture sources: %w", err)
	}
	return s, nil
}

// fail records the first failure; later ones are only logged. Run aborts as
// soon as the flag is set, regardless of captures still in flight.
func (s *Session) fail(err error) {
	if s.failure == nil {
		s.failure = err
		return
	}
	s.log.Debug("additional capture failure", "err", err)
}

// Run drives capture generations until every output settles, something
// fails, or the retry limit is exceeded.
func (s *Session) Run() error {
	if s.failure != nil {
		return s.failure
	}
	for generation := 1; ; generation++ {
		issued := 0
		for _, src := range s.sources {
			switch src.state {
			case StateReady:
				if err := src.issue(); err != nil {
					return err
				}
				issued++
			case StateNegotiating:
				return fmt.Errorf("%w: output %s never sent format and size", ErrProtocol, src.name())
			default:
				return fmt.Errorf("%w: output %s in state %s at issue", ErrProtocol, src.name(), src.state)
			}
		}
		if issued == 0 {
			return ErrNoOutputs
		}
		s.log.Debug("captures issued", "generation", generation, "outputs", issued)
		for s.outstanding > 0 && s.failure == nil {
			if err := s.dispatch(); err != nil {
				return fmt.Errorf("dispatch capture events: %w", err)
			}
		}
		if s.failure != nil {
			return s.failure
		}
		if !s.retry {
			return nil
		}
		if s.retryLimit > 0 && generation > s.retryLimit {
			return fmt.Errorf("%w: scene still unstable after %d captures", ErrRetryLimit, generation)
		}
		s.log.Debug("compositor asked for re-capture", "generation", generation)
		s.retry = false
		s.rearm()
	}
}

// rearm returns settled sources to ready so the next generation re-captures
// every output, not only the ones that asked for a retry.
func (s *Session) rearm() {
	for _, src := range s.sources {
		if src.state == StateCompleted {
			src.state = StateReady
		}
	}
}

// Inputs exposes the completed captures in discovery order, ready for
// compositing. It fails if any source has not completed.
func (s *Session) Inputs() ([]stitch.Input, error) {
	inputs := make([]stitch.Input, 0, len(s.sources))
	for _, src := range s.sources {
		if src.state != StateCompleted || src.buf == nil {
			return nil, fmt.Errorf("output %s has no completed capture (state %s)", src.name(), src.state)
		}
		inputs = append(inputs, stitch.Input{
			Name:   src.name(),
			Width:  src.buf.Width(),
			Height: src.buf.Height(),
			Stride: src.buf.Stride(),
			Format: src.buf.Format(),
			Pix:    src.buf.Bytes(),
		})
	}
	return inputs, nil
}

// Close destroys the capture sources and their buffers. The connection
// itself stays usable.
func (s *Session) Close() {
	for _, src := range s.sources {
		if src.buf != nil {
			if err := src.buf.Destroy(); err != nil {
				s.log.Warn("destroy capture buffer", "output", src.name(), "err", err)
			}
			src.buf = nil
		}
		if src.wire != nil {
			if err := src.wire.Destroy(); err != nil {
				s.log.Warn("destroy capture source", "output", src.name(), "err", err)
			}
			src.wire = nil
		}
	}
}
