package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greenthumb/greenthumb-cli/pkg/classifier"
	"github.com/greenthumb/greenthumb-cli/pkg/config"
	"github.com/greenthumb/greenthumb-cli/pkg/formatter"
	"github.com/greenthumb/greenthumb-cli/pkg/locale"
	"github.com/greenthumb/greenthumb-cli/pkg/logging"
)

var (
	analyzeServer   string
	analyzeLanguage string
	analyzeOutput   string
	analyzeTimeout  int
	analyzeVerbose  bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze IMAGE",
		Short: "Analyze a plant photo for disease",
		Long: `Upload a plant photo to the analysis service and report the detected crop,
disease status, severity and care recommendations.

Examples:
  # Analyze a single photo
  greenthumb analyze leaf.jpg

  # Get machine-readable output
  greenthumb analyze leaf.jpg -o json

  # Analyze against a different server, in Hindi
  greenthumb analyze leaf.jpg -s http://farm.example.com:8000 -l hi`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	// Flags
	cmd.Flags().StringVarP(&analyzeServer, "server", "s", "", "Analysis service URL (defaults to the configured server)")
	cmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "Display language (en, hi, kn)")
	cmd.Flags().StringVarP(&analyzeOutput, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().IntVar(&analyzeTimeout, "timeout", 0, "Request timeout in seconds (defaults to the configured timeout)")
	cmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	server := resolveServer(analyzeServer, cfg)
	tag := resolveLanguage(analyzeLanguage, cfg)
	human := analyzeOutput != "json" && analyzeOutput != "yaml"

	if human {
		printAnalyzeHeader(imagePath, server)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	client := newClassifierClient(server, analyzeTimeout, cfg, analyzeVerbose)

	var s *spinner.Spinner
	if human {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
		s.Suffix = " Analyzing image..."
		s.Start()
	}

	analysis, err := client.AnalyzeImage(cmd.Context(), classifier.Upload{
		Filename: filepath.Base(imagePath),
		Data:     data,
	})
	if s != nil {
		s.Stop()
	}
	if err != nil {
		if classifier.IsCancelled(err) {
			printNotice(locale.T(tag, "msg_analysis_cancelled", nil))
			return nil
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if human {
		printSuccess("Analysis complete")
	}

	return formatter.DisplayAnalysis(cmd.OutOrStdout(), analysis, analyzeOutput, tag)
}

func printAnalyzeHeader(imagePath, server string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println("🌱 GreenThumb Plant Analyzer")
	fmt.Printf("🖼  Image: %s\n", imagePath)
	fmt.Printf("🔗 Server: %s\n", server)
	fmt.Println()
}

// resolveServer prefers the flag over the configured server.
func resolveServer(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Server
}

// resolveLanguage prefers the flag over the persisted preference.
func resolveLanguage(flag string, cfg config.Config) locale.Tag {
	if flag != "" {
		return locale.ParseTag(flag)
	}
	return locale.ParseTag(cfg.Language)
}

func newClassifierClient(server string, timeoutFlag int, cfg config.Config, verbose bool) *classifier.Client {
	timeout := timeoutFlag
	if timeout <= 0 {
		timeout = cfg.TimeoutSeconds
	}

	return classifier.New(server,
		classifier.WithTimeout(time.Duration(timeout)*time.Second),
		classifier.WithLogger(logging.New(verbose)),
	)
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Printf("✗ %s\n", msg)
}

// printNotice writes a muted informational line to stderr, keeping stdout
// clean for -o json and -o yaml consumers.
func printNotice(msg string) {
	fmt.Fprintln(os.Stderr, color.HiBlackString(msg))
}
