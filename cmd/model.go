package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/greenthumb/greenthumb-cli/pkg/classifier"
	"github.com/greenthumb/greenthumb-cli/pkg/config"
	"github.com/greenthumb/greenthumb-cli/pkg/formatter"
	"github.com/greenthumb/greenthumb-cli/pkg/locale"
)

var (
	modelServer   string
	modelLanguage string
	modelOutput   string
	modelTimeout  int
	modelVerbose  bool
)

func NewModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Show the model serving analyses",
		Long: `Fetch the analysis service's description of the model it is serving:
architecture, supported crops, severity scale and input size.`,
		Args: cobra.NoArgs,
		RunE: runModel,
	}

	// Flags
	cmd.Flags().StringVarP(&modelServer, "server", "s", "", "Analysis service URL (defaults to the configured server)")
	cmd.Flags().StringVarP(&modelLanguage, "language", "l", "", "Display language (en, hi, kn)")
	cmd.Flags().StringVarP(&modelOutput, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().IntVar(&modelTimeout, "timeout", 0, "Request timeout in seconds (defaults to the configured timeout)")
	cmd.Flags().BoolVarP(&modelVerbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	server := resolveServer(modelServer, cfg)
	tag := resolveLanguage(modelLanguage, cfg)
	human := modelOutput != "json" && modelOutput != "yaml"

	client := newClassifierClient(server, modelTimeout, cfg, modelVerbose)

	var s *spinner.Spinner
	if human {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
		s.Suffix = " Fetching model info..."
		s.Start()
	}

	info, err := client.ModelInfo(cmd.Context())
	if s != nil {
		s.Stop()
	}
	if err != nil {
		if classifier.IsCancelled(err) {
			printNotice(locale.T(tag, "msg_analysis_cancelled", nil))
			return nil
		}
		return fmt.Errorf("failed to fetch model info: %w", err)
	}

	return formatter.DisplayInfo(cmd.OutOrStdout(), info, modelOutput, tag)
}
