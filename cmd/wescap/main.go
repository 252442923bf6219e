package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		os.Exit(runShoot(nil))
	}

	switch os.Args[1] {
	case "shoot":
		os.Exit(runShoot(os.Args[2:]))
	case "outputs":
		os.Exit(runOutputs(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "version":
		fmt.Println("wescap " + version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		// Bare flags mean shoot, so plain `wescap --buffer-type=1`
		// works the way the classic screenshooter invocation does.
		if strings.HasPrefix(os.Args[1], "-") {
			os.Exit(runShoot(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wescap [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Running wescap with no command captures all outputs into one PNG.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shoot               Capture all outputs into one PNG (default)")
	fmt.Fprintln(w, "  outputs             List connected outputs")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  version             Print version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wescap <command> --help' for command-specific options.")
}
