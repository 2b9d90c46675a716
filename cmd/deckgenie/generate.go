package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate a deck for a topic",
		Long: `Generate asks the configured model for an outline about the topic,
lays out every slide and writes the deck to disk.

With --outline the slides come from a Markdown file instead, so no API
key is needed. The topic is then optional and defaults to the outline's
frontmatter title.

Example:
  deckgenie generate "The future of remote work"
  deckgenie generate "Quarterly review" --theme business --format pdf -o review.pdf
  deckgenie generate --outline talk.md --no-images`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().String("outline", "", "Build the deck from a Markdown outline instead of the model")
	cmd.Flags().StringP("format", "f", "", "Output format: pptx or pdf (overrides config)")
	cmd.Flags().StringP("theme", "t", "", "Theme to use (overrides config)")
	cmd.Flags().StringP("output", "o", "", "Output file or directory (default: configured output directory)")
	cmd.Flags().Bool("no-images", false, "Skip image lookup")
	cmd.Flags().String("model", "", "Model name (overrides config)")
	cmd.Flags().Int("max-slides", 0, "Maximum number of slides (overrides config)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	topic := ""
	if len(args) == 1 {
		topic = args[0]
	}

	outlinePath, _ := cmd.Flags().GetString("outline")
	if strings.TrimSpace(topic) == "" && outlinePath == "" {
		return errors.New("a topic is required unless --outline is given")
	}

	a, err := newApp(ctx, cmd, outlinePath, sourceRequired)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	var artifact *entities.Artifact
	if outlinePath != "" {
		plan, err := a.source.Generate(ctx, topic)
		if err != nil {
			return err
		}
		artifact, err = a.deck.Build(ctx, plan, "", "")
		if err != nil {
			return err
		}
	} else {
		artifact, err = a.deck.Generate(ctx, ports.DeckRequest{Topic: topic})
		if err != nil {
			return err
		}
	}

	output, _ := cmd.Flags().GetString("output")
	path := outputPath(output, a.config.Output.GetDirectory(), artifact.FileName)

	if err := writeArtifact(path, artifact.Data); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d-slide %s deck to %s\n", artifact.SlideCount, artifact.Format, path)
	return nil
}

// outputPath decides where a deck is written. An empty output uses the
// default directory; an existing directory or a trailing separator keeps
// the generated file name.
func outputPath(output, defaultDir, fileName string) string {
	if output == "" {
		return filepath.Join(defaultDir, fileName)
	}

	if strings.HasSuffix(output, string(filepath.Separator)) || strings.HasSuffix(output, "/") {
		return filepath.Join(output, fileName)
	}

	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, fileName)
	}

	return output
}

// writeArtifact writes data through a temporary file in the target
// directory so a failed write never leaves a truncated deck behind
func writeArtifact(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".deckgenie-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing deck: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting deck permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("saving deck to %s: %w", path, err)
	}

	return nil
}
