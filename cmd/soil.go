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
)

var (
	soilServer   string
	soilLanguage string
	soilOutput   string
	soilTimeout  int
	soilVerbose  bool
)

func NewSoilCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soil IMAGE",
		Short: "Analyze a soil photo",
		Long: `Upload a soil photo to the analysis service and report the predicted pH,
moisture, nutrient levels, texture and crop recommendations.

Examples:
  # Analyze a soil sample photo
  greenthumb soil sample.jpg

  # Machine-readable output
  greenthumb soil sample.jpg -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runSoil,
	}

	// Flags
	cmd.Flags().StringVarP(&soilServer, "server", "s", "", "Analysis service URL (defaults to the configured server)")
	cmd.Flags().StringVarP(&soilLanguage, "language", "l", "", "Display language (en, hi, kn)")
	cmd.Flags().StringVarP(&soilOutput, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().IntVar(&soilTimeout, "timeout", 0, "Request timeout in seconds (defaults to the configured timeout)")
	cmd.Flags().BoolVarP(&soilVerbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runSoil(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	server := resolveServer(soilServer, cfg)
	tag := resolveLanguage(soilLanguage, cfg)
	human := soilOutput != "json" && soilOutput != "yaml"

	if human {
		printSoilHeader(imagePath, server)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	client := newClassifierClient(server, soilTimeout, cfg, soilVerbose)

	var s *spinner.Spinner
	if human {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
		s.Suffix = " Analyzing soil..."
		s.Start()
	}

	soil, err := client.AnalyzeSoil(cmd.Context(), classifier.Upload{
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
		return fmt.Errorf("soil analysis failed: %w", err)
	}

	if human {
		printSuccess("Soil analysis complete")
	}

	return formatter.DisplaySoil(cmd.OutOrStdout(), soil, soilOutput, tag)
}

func printSoilHeader(imagePath, server string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println("🌍 GreenThumb Soil Analyzer")
	fmt.Printf("🖼  Image: %s\n", imagePath)
	fmt.Printf("🔗 Server: %s\n", server)
	fmt.Println()
}
