// Package mcp exposes screen capture over the Model Context Protocol so MCP
// clients can take screenshots and inspect outputs without shelling out.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/declantsien/wescap/internal/config"
	"github.com/declantsien/wescap/internal/shot"
)

const (
	ServerName    = "wescap"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for screen capture.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	log       *slog.Logger

	// Capture hooks (primarily for tests).
	takeFn func(shot.Options) (*shot.Result, error)
	listFn func(forceX11 bool, log *slog.Logger) ([]shot.OutputInfo, error)
}

// NewServer creates a new MCP server for the given configuration.
func NewServer(cfg *config.Config, log *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		config: cfg,
		log:    log,
		takeFn: shot.Take,
		listFn: shot.ListOutputs,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "capture_screen",
		Description: "Capture a screenshot of every connected output and save it as a PNG. Uses the compositor's output capture protocol on wayland and falls back to X11 when no wayland display is reachable. Returns the saved file path and the stitched image dimensions.",
	}, s.handleCaptureScreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_outputs",
		Description: "List the connected outputs with their names, positions, modes, and scale factors.",
	}, s.handleListOutputs)
}
