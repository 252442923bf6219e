// Package shot is the high-level entry point shared by the CLI and the MCP
// server: it picks the capture path, runs it, and hands back one stitched
// image.
package shot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/declantsien/wescap/internal/buffer"
	"github.com/declantsien/wescap/internal/capture"
	"github.com/declantsien/wescap/internal/drm"
	"github.com/declantsien/wescap/internal/stitch"
	"github.com/declantsien/wescap/internal/x11grab"
)

// Options selects how the screen is captured.
type Options struct {
	// Buffer picks the allocation backend for wayland captures.
	Buffer buffer.Kind
	// Source picks the capture tap point on each output.
	Source capture.SourceKind
	// DRMDevice is the node dumb buffers are allocated on when Buffer is
	// KindDma.
	DRMDevice string
	// RetryLimit caps re-captures of an unstable scene, zero meaning
	// unbounded.
	RetryLimit int
	// ForceX11 skips wayland even when WAYLAND_DISPLAY is set.
	ForceX11 bool
	Log      *slog.Logger
}

// OutputInfo describes one captured display.
type OutputInfo struct {
	Name   string
	X      int32
	Y      int32
	Width  int32
	Height int32
	Scale  int32
}

// Result is a finished capture.
type Result struct {
	Image   *stitch.Image
	Outputs []OutputInfo
	// Backend names the path taken: shm, dma, or x11.
	Backend string
}

// Take captures all displays and stitches them into one image. Wayland is
// preferred; the X11 path runs when no wayland display is reachable or when
// ForceX11 is set.
func Take(opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Buffer != buffer.KindShm && opts.Buffer != buffer.KindDma {
		return nil, fmt.Errorf("unknown buffer kind %v", opts.Buffer)
	}
	if opts.ForceX11 || os.Getenv("WAYLAND_DISPLAY") == "" {
		return takeX11(log)
	}
	return takeWayland(opts, log)
}

func takeWayland(opts Options, log *slog.Logger) (*Result, error) {
	conn, err := capture.Connect(log)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var backend buffer.Backend
	switch opts.Buffer {
	case buffer.KindShm:
		backend = buffer.NewShmBackend(conn.Shm(), log)
	case buffer.KindDma:
		if conn.Dmabuf() == nil {
			return nil, errors.New("compositor does not expose zwp_linux_dmabuf_v1")
		}
		dev, err := drm.Open(opts.DRMDevice)
		if err != nil {
			return nil, fmt.Errorf("open drm device: %w", err)
		}
		defer dev.Close()
		backend = buffer.NewDmabufBackend(buffer.DRMDevice{Dev: dev}, conn.Dmabuf(), log)
	}

	session, err := capture.NewSession(conn, capture.Options{
		Source:     opts.Source,
		Backend:    backend,
		RetryLimit: opts.RetryLimit,
		Log:        log,
	})
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.Run(); err != nil {
		return nil, err
	}
	inputs, err := session.Inputs()
	if err != nil {
		return nil, err
	}
	img, err := stitch.Stitch(inputs)
	if err != nil {
		return nil, fmt.Errorf("stitch outputs: %w", err)
	}
	log.Info("captured", "outputs", len(inputs), "size", fmt.Sprintf("%dx%d", img.Width, img.Height), "backend", opts.Buffer)

	return &Result{
		Image:   img,
		Outputs: waylandOutputs(conn.Outputs()),
		Backend: opts.Buffer.String(),
	}, nil
}

func takeX11(log *slog.Logger) (*Result, error) {
	displays := x11grab.Displays()
	img, err := x11grab.Grab(log)
	if err != nil {
		return nil, err
	}
	outputs := make([]OutputInfo, 0, len(displays))
	for _, d := range displays {
		outputs = append(outputs, OutputInfo{
			Name:   fmt.Sprintf("display-%d", d.Index),
			X:      int32(d.X),
			Y:      int32(d.Y),
			Width:  int32(d.Width),
			Height: int32(d.Height),
			Scale:  1,
		})
	}
	log.Info("captured", "outputs", len(outputs), "size", fmt.Sprintf("%dx%d", img.Width, img.Height), "backend", "x11")
	return &Result{Image: img, Outputs: outputs, Backend: "x11"}, nil
}

func waylandOutputs(outs []*capture.Output) []OutputInfo {
	infos := make([]OutputInfo, 0, len(outs))
	for _, out := range outs {
		x, y := out.Position()
		w, h := out.Mode()
		infos = append(infos, OutputInfo{
			Name:   out.Name(),
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
			Scale:  out.Scale(),
		})
	}
	return infos
}

// ListOutputs reports the displays a capture would cover, without touching
// any pixels.
func ListOutputs(forceX11 bool, log *slog.Logger) ([]OutputInfo, error) {
	if log == nil {
		log = slog.Default()
	}
	if forceX11 || os.Getenv("WAYLAND_DISPLAY") == "" {
		displays := x11grab.Displays()
		if len(displays) == 0 {
			return nil, errors.New("no displays found")
		}
		outputs := make([]OutputInfo, 0, len(displays))
		for _, d := range displays {
			outputs = append(outputs, OutputInfo{
				Name:   fmt.Sprintf("display-%d", d.Index),
				X:      int32(d.X),
				Y:      int32(d.Y),
				Width:  int32(d.Width),
				Height: int32(d.Height),
				Scale:  1,
			})
		}
		return outputs, nil
	}

	conn, err := capture.Connect(log)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	// a second roundtrip settles names, modes, and positions
	if err := conn.Roundtrip(); err != nil {
		return nil, err
	}
	if len(conn.Outputs()) == 0 {
		return nil, capture.ErrNoOutputs
	}
	return waylandOutputs(conn.Outputs()), nil
}
