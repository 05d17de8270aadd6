package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/greenthumb/greenthumb-cli/pkg/classifier"
	"github.com/greenthumb/greenthumb-cli/pkg/config"
	"github.com/greenthumb/greenthumb-cli/pkg/formatter"
	"github.com/greenthumb/greenthumb-cli/pkg/locale"
)

var (
	batchServer   string
	batchLanguage string
	batchOutput   string
	batchTimeout  int
	batchVerbose  bool
)

func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch IMAGE... | DIRECTORY",
		Short: "Analyze several plant photos in one request",
		Long: `Upload multiple plant photos in a single request and report the outcome for
each file. Directories are expanded to the image files they contain.

Examples:
  # Analyze a handful of photos
  greenthumb batch leaf1.jpg leaf2.jpg leaf3.jpg

  # Analyze every image in a directory
  greenthumb batch ./field-photos

  # Machine-readable results
  greenthumb batch ./field-photos -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatch,
	}

	// Flags
	cmd.Flags().StringVarP(&batchServer, "server", "s", "", "Analysis service URL (defaults to the configured server)")
	cmd.Flags().StringVarP(&batchLanguage, "language", "l", "", "Display language (en, hi, kn)")
	cmd.Flags().StringVarP(&batchOutput, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().IntVar(&batchTimeout, "timeout", 0, "Request timeout in seconds (defaults to the configured timeout)")
	cmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	server := resolveServer(batchServer, cfg)
	tag := resolveLanguage(batchLanguage, cfg)
	human := batchOutput != "json" && batchOutput != "yaml"

	paths, err := expandImagePaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no image files found in %s", strings.Join(args, ", "))
	}

	uploads := make([]classifier.Upload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read image %s: %w", p, err)
		}
		uploads = append(uploads, classifier.Upload{
			Filename: filepath.Base(p),
			Data:     data,
		})
	}

	if human {
		printBatchHeader(len(uploads), server)
	}

	client := newClassifierClient(server, batchTimeout, cfg, batchVerbose)

	var s *spinner.Spinner
	if human {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
		s.Suffix = fmt.Sprintf(" Analyzing %d images...", len(uploads))
		s.Start()
	}

	res, err := client.AnalyzeBatch(cmd.Context(), uploads)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		if classifier.IsCancelled(err) {
			printNotice(locale.T(tag, "msg_analysis_cancelled", nil))
			return nil
		}
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	if human {
		printSuccess(fmt.Sprintf("Analyzed %d of %d images", res.Successful, res.Total))
	}

	return formatter.DisplayBatch(cmd.OutOrStdout(), res, batchOutput, tag)
}

func printBatchHeader(count int, server string) {
	fmt.Println()
	fmt.Printf("🌱 Batch analysis of %d images\n", count)
	fmt.Printf("🔗 Server: %s\n", server)
	fmt.Println()
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// expandImagePaths flattens the argument list: files pass through untouched,
// directories contribute their image files (non-recursively, sorted by
// os.ReadDir's lexical order).
func expandImagePaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}

	return paths, nil
}
