package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greenthumb/greenthumb-cli/pkg/config"
	"github.com/greenthumb/greenthumb-cli/pkg/locale"
)

func NewLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [TAG]",
		Short: "Show or set the display language",
		Long: `Without an argument, print the persisted display language and the supported
set. With an argument, persist it as the default for future runs.

Examples:
  # Show the current language
  greenthumb lang

  # Switch to Hindi
  greenthumb lang hi`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLang,
	}
}

func runLang(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("%s (supported: %s)\n", locale.ParseTag(cfg.Language), joinTags(locale.SupportedTags()))
		return nil
	}

	tag, ok := locale.MatchTag(args[0])
	if !ok {
		fmt.Println(color.YellowString("⚠ %q is not a supported language, falling back to %s", args[0], tag))
	}

	cfg.Language = tag.String()
	if err := config.Save(cfg); err != nil {
		return err
	}

	printSuccess(locale.T(tag, "msg_language_set", map[string]any{"Language": tag.String()}))
	return nil
}

func joinTags(tags []locale.Tag) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return strings.Join(out, ", ")
}
