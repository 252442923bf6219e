package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/declantsien/wescap/internal/buffer"
	"github.com/declantsien/wescap/internal/capture"
	"github.com/declantsien/wescap/internal/config"
	"github.com/declantsien/wescap/internal/encode"
	"github.com/declantsien/wescap/internal/shot"
)

func runShoot(args []string) int {
	fs := flag.NewFlagSet("shoot", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wescap shoot [flags]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Capture every connected output and stitch the result into one PNG.")
		fmt.Fprintln(os.Stderr, "The file is saved under a dated name and its path printed to stdout.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Config file path (default: ~/.config/wescap/config.yaml)")
	bufferType := fs.String("buffer-type", "", "Buffer backend: 0 or shm, 1 or dma (default: config buffer_type)")
	sourceType := fs.String("source-type", "", "Capture source: 0 or framebuffer, 1 or writeback (default: config source_type)")
	drmNode := fs.String("drm-render-node", "", "DRM device dma buffers are allocated on (default: config drm_device)")
	outputDir := fs.String("output-dir", "", "Directory to save into (default: config output_dir, then $XDG_PICTURES_DIR)")
	retryLimit := fs.Int("retry-limit", -1, "Max re-captures of an unstable scene, 0 retries forever (default: config retry_limit)")
	toStdout := fs.Bool("stdout", false, "Write the PNG to stdout instead of a file")
	x11 := fs.Bool("x11", false, "Capture via X11 even when a wayland display is available")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (default: config log_level)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "shoot takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *bufferType != "" {
		cfg.BufferType = *bufferType
	}
	if *sourceType != "" {
		cfg.SourceType = *sourceType
	}
	if *drmNode != "" {
		cfg.DRMDevice = *drmNode
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *retryLimit >= 0 {
		cfg.RetryLimit = *retryLimit
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	// The config file was validated on load, so anything wrong here came
	// from a flag.
	kind, err := buffer.ParseKind(cfg.BufferType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	source, err := capture.ParseSourceKind(cfg.SourceType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *toStdout && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "refusing to write a binary PNG to a terminal; redirect stdout or drop --stdout")
		return 2
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	res, err := shot.Take(shot.Options{
		Buffer:     kind,
		Source:     source,
		DRMDevice:  cfg.DRMDevice,
		RetryLimit: cfg.RetryLimit,
		ForceX11:   *x11,
		Log:        log,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *toStdout {
		if err := encode.WritePNG(os.Stdout, res.Image); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = encode.DefaultDir()
	}
	path, err := encode.Save(dir, time.Now(), res.Image)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(path)
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}
