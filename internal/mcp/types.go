package mcp

// CaptureScreenInput is the input for the capture_screen tool.
type CaptureScreenInput struct {
	BufferType string `json:"buffer_type,omitempty" jsonschema:"Buffer backend: shm (CPU shared memory) or dma (GPU dma-buf). Defaults to the configured buffer_type."`
	SourceType string `json:"source_type,omitempty" jsonschema:"Capture tap point: framebuffer or writeback. Defaults to the configured source_type."`
	OutputDir  string `json:"output_dir,omitempty" jsonschema:"Directory the PNG is saved in. Defaults to the configured output_dir, then $XDG_PICTURES_DIR, then the working directory."`
	RetryLimit *int   `json:"retry_limit,omitempty" jsonschema:"Maximum re-captures of an unstable scene before giving up; 0 retries forever. Defaults to the configured retry_limit."`
	X11        bool   `json:"x11,omitempty" jsonschema:"When true, capture via X11 even when a wayland display is available."`
}

// CaptureScreenOutput is the output for the capture_screen tool.
type CaptureScreenOutput struct {
	Path    string `json:"path"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Outputs int    `json:"outputs"`
	Backend string `json:"backend"`
}

// ListOutputsInput is the input for the list_outputs tool.
type ListOutputsInput struct {
	X11 bool `json:"x11,omitempty" jsonschema:"When true, list X11 displays even when a wayland display is available."`
}

// OutputDescription describes one connected output.
type OutputDescription struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Scale  int    `json:"scale"`
}

// ListOutputsOutput is the output for the list_outputs tool.
type ListOutputsOutput struct {
	Outputs []OutputDescription `json:"outputs"`
}
