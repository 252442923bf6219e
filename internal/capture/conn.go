// Package capture speaks the weston output capture protocol: it discovers
// outputs, negotiates per-output buffer parameters, and drives capture
// generations until every output has delivered a stable frame.
package capture

import (
	"fmt"
	"log/slog"

	"github.com/rajveermalviya/go-wayland/wayland/client"

	"github.com/declantsien/wescap/internal/proto/linuxdmabuf"
	"github.com/declantsien/wescap/internal/proto/westoncapture"
)

// Conn owns the wayland connection and the globals capturing needs.
type Conn struct {
	display  *client.Display
	ctx      *client.Context
	registry *client.Registry
	shm      *client.Shm
	capture  *westoncapture.WestonCaptureV1
	dmabuf   *linuxdmabuf.ZwpLinuxDmabufV1
	outputs  []*Output
	log      *slog.Logger
}

// Connect dials the compositor named by WAYLAND_DISPLAY and runs the first
// discovery roundtrip, binding outputs and the capture globals. Output
// properties are still in flight afterwards; they settle on the next
// roundtrip, which NewSession (or an explicit Roundtrip call) performs.
func Connect(log *slog.Logger) (*Conn, error) {
	if log == nil {
		log = slog.Default()
	}
	display, err := client.Connect("")
	if err != nil {
		return nil, fmt.Errorf("connect to wayland display: %w", err)
	}
	c := &Conn{display: display, ctx: display.Context(), log: log}
	registry, err := display.GetRegistry()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("get registry: %w", err)
	}
	c.registry = registry
	registry.SetGlobalHandler(c.handleGlobal)
	if err := c.Roundtrip(); err != nil {
		c.Close()
		return nil, fmt.Errorf("discover globals: %w", err)
	}
	if c.capture == nil {
		c.Close()
		return nil, fmt.Errorf("compositor does not expose %s", westoncapture.WestonCaptureV1InterfaceName)
	}
	if c.shm == nil {
		c.Close()
		return nil, fmt.Errorf("compositor does not expose %s", "wl_shm")
	}
	return c, nil
}

func (c *Conn) handleGlobal(e client.RegistryGlobalEvent) {
	switch e.Interface {
	case "wl_output":
		c.bindOutput(e)
	case "wl_shm":
		shm := client.NewShm(c.ctx)
		if err := c.registry.Bind(e.Name, e.Interface, 1, shm); err != nil {
			c.log.Error("bind wl_shm", "err", err)
			return
		}
		c.shm = shm
	case westoncapture.WestonCaptureV1InterfaceName:
		cap := westoncapture.NewWestonCaptureV1(c.ctx)
		if err := c.registry.Bind(e.Name, e.Interface, 1, cap); err != nil {
			c.log.Error("bind weston_capture_v1", "err", err)
			return
		}
		c.capture = cap
	case linuxdmabuf.ZwpLinuxDmabufV1InterfaceName:
		version := e.Version
		if version > 3 {
			version = 3
		}
		dmabuf := linuxdmabuf.NewZwpLinuxDmabufV1(c.ctx)
		if err := c.registry.Bind(e.Name, e.Interface, version, dmabuf); err != nil {
			c.log.Error("bind zwp_linux_dmabuf_v1", "err", err)
			return
		}
		c.dmabuf = dmabuf
	}
}

func (c *Conn) bindOutput(e client.RegistryGlobalEvent) {
	version := e.Version
	if version > 4 {
		version = 4
	}
	wl := client.NewOutput(c.ctx)
	if err := c.registry.Bind(e.Name, e.Interface, version, wl); err != nil {
		c.log.Error("bind wl_output", "registry_name", e.Name, "err", err)
		return
	}
	out := &Output{wl: wl, registryName: e.Name, ordinal: len(c.outputs), scale: 1}
	wl.SetGeometryHandler(func(ev client.OutputGeometryEvent) {
		out.x, out.y = ev.X, ev.Y
	})
	wl.SetModeHandler(func(ev client.OutputModeEvent) {
		if ev.Flags&uint32(client.OutputModeCurrent) != 0 {
			out.width, out.height = ev.Width, ev.Height
		}
	})
	wl.SetScaleHandler(func(ev client.OutputScaleEvent) {
		out.scale = ev.Factor
	})
	wl.SetNameHandler(func(ev client.OutputNameEvent) {
		out.name = ev.Name
	})
	c.outputs = append(c.outputs, out)
	c.log.Debug("output announced", "ordinal", out.ordinal, "registry_name", e.Name)
}

// Roundtrip flushes pending requests and dispatches until the compositor
// confirms it has processed them all.
func (c *Conn) Roundtrip() error {
	callback, err := c.display.Sync()
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	done := false
	callback.SetDoneHandler(func(client.CallbackDoneEvent) {
		done = true
	})
	for !done {
		if err := c.ctx.Dispatch(); err != nil {
			return fmt.Errorf("dispatch: %w", err)
		}
	}
	return nil
}

// Outputs lists the discovered outputs in announcement order.
func (c *Conn) Outputs() []*Output {
	return c.outputs
}

// Shm returns the wl_shm global.
func (c *Conn) Shm() *client.Shm {
	return c.shm
}

// Dmabuf returns the zwp_linux_dmabuf_v1 global, nil if the compositor
// does not offer it.
func (c *Conn) Dmabuf() *linuxdmabuf.ZwpLinuxDmabufV1 {
	return c.dmabuf
}

// Close destroys the capture globals and drops the connection.
func (c *Conn) Close() {
	if c.capture != nil {
		if err := c.capture.Destroy(); err != nil {
			c.log.Debug("destroy weston_capture_v1", "err", err)
		}
		c.capture = nil
	}
	if c.dmabuf != nil {
		if err := c.dmabuf.Destroy(); err != nil {
			c.log.Debug("destroy zwp_linux_dmabuf_v1", "err", err)
		}
		c.dmabuf = nil
	}
	if c.ctx != nil {
		c.ctx.Close()
		c.ctx = nil
	}
}
