package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┐ ┬┌┐┌┌┬┐
  ├┴┐││││ ││
  └─┘┴┘└┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "bindctl",
		Short: "Exercise and observe reactive binding graphs",
		Long: `bindctl drives the bind library from the command line.

Watch a composed value graph recompute, benchmark propagation
throughput, or serve a live inspector for a running graph:

  • Composed values recompute once per batch, in dependency order
  • Debounced setters coalesce bursts into single updates
  • Snapshots persist named sources and restore them atomically
  • The inspector pushes value changes to the browser over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		serveCmd(),
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the bindctl ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
