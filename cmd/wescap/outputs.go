package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/declantsien/wescap/internal/shot"
)

type outputJSON struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
	X       int32  `json:"x"`
	Y       int32  `json:"y"`
	Width   int32  `json:"width"`
	Height  int32  `json:"height"`
	Scale   int32  `json:"scale"`
}

func runOutputs(args []string) int {
	fs := flag.NewFlagSet("outputs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wescap outputs [--json] [--x11]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected outputs with their geometry and placement order.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output full output details as JSON")
	x11 := fs.Bool("x11", false, "List X11 displays even when a wayland display is available")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "outputs takes no arguments")
		fs.Usage()
		return 2
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	infos, err := shot.ListOutputs(*x11, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		entries := make([]outputJSON, 0, len(infos))
		for i, info := range infos {
			entries = append(entries, outputJSON{
				Ordinal: i,
				Name:    info.Name,
				X:       info.X,
				Y:       info.Y,
				Width:   info.Width,
				Height:  info.Height,
				Scale:   info.Scale,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for i, info := range infos {
		fmt.Printf("%d: %s %dx%d at %d,%d scale %d\n",
			i, info.Name, info.Width, info.Height, info.X, info.Y, info.Scale)
	}
	return 0
}
