package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenthumb/greenthumb-cli/pkg/config"
	"github.com/greenthumb/greenthumb-cli/pkg/locale"
)

var (
	healthServer   string
	healthLanguage string
	healthTimeout  int
	healthVerbose  bool
)

func NewHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the analysis service is up",
		Long: `Ping the analysis service. Exits 0 when the service answers healthy and
non-zero otherwise, so it can gate scripts.`,
		Args: cobra.NoArgs,
		RunE: runHealth,
	}

	// Flags
	cmd.Flags().StringVarP(&healthServer, "server", "s", "", "Analysis service URL (defaults to the configured server)")
	cmd.Flags().StringVarP(&healthLanguage, "language", "l", "", "Display language (en, hi, kn)")
	cmd.Flags().IntVar(&healthTimeout, "timeout", 0, "Request timeout in seconds (defaults to the configured timeout)")
	cmd.Flags().BoolVarP(&healthVerbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	server := resolveServer(healthServer, cfg)
	tag := resolveLanguage(healthLanguage, cfg)

	client := newClassifierClient(server, healthTimeout, cfg, healthVerbose)

	if !client.Healthy(cmd.Context()) {
		return fmt.Errorf("%s (%s)", locale.T(tag, "msg_service_unreachable", nil), server)
	}

	printSuccess(locale.T(tag, "msg_service_healthy", nil))
	return nil
}
