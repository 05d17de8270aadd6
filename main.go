package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/greenthumb/greenthumb-cli/cmd"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	// Ctrl-C cancels the root context, which aborts any in-flight request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "greenthumb",
		Short: "Plant disease analysis from the command line",
		Long: `greenthumb sends plant photos to a GreenThumb analysis service and reports
the detected crop, disease status, severity and care recommendations in your
preferred language.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewAnalyzeCmd(),
		cmd.NewBatchCmd(),
		cmd.NewSoilCmd(),
		cmd.NewHealthCmd(),
		cmd.NewModelCmd(),
		cmd.NewLangCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("greenthumb version %s\n", version)
		},
	}
}
