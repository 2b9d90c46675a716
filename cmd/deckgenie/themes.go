package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/logging"
	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// themeEntry is one theme in the themes listing
type themeEntry struct {
	Name            string `json:"name" yaml:"name"`
	DisplayName     string `json:"display_name" yaml:"display_name"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	BackgroundStyle string `json:"background_style" yaml:"background_style"`
	AccentColor     string `json:"accent_color" yaml:"accent_color"`
	FontFamily      string `json:"font_family" yaml:"font_family"`
	Source          string `json:"source" yaml:"source"`
}

func newThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `List the built-in themes and any custom themes found in the
configured theme directory. Custom themes replace presets of the same name.

Example:
  deckgenie themes
  deckgenie themes --output json`,
		Args: cobra.NoArgs,
		RunE: runThemes,
	}

	cmd.Flags().String("output", "table", "Output format: table, json or yaml")

	return cmd
}

func runThemes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	themes, err := newThemeService(cfg, logger.Component("themes")).List(ctx)
	if err != nil {
		return fmt.Errorf("listing themes: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	return printThemes(cmd.OutOrStdout(), themeEntries(themes), output)
}

func themeEntries(themes []entities.Theme) []themeEntry {
	entries := make([]themeEntry, 0, len(themes))
	for i := range themes {
		theme := &themes[i]
		source := "custom"
		if theme.IsBuiltIn() {
			source = "built-in"
		}
		entries = append(entries, themeEntry{
			Name:            theme.Name,
			DisplayName:     theme.GetDisplayName(),
			Description:     theme.Description,
			BackgroundStyle: string(theme.BackgroundStyle),
			AccentColor:     theme.AccentColor,
			FontFamily:      theme.FontFamily,
			Source:          source,
		})
	}
	return entries
}

func printThemes(w io.Writer, entries []themeEntry, format string) error {
	switch format {
	case "table", "":
		return printThemesTable(w, entries)
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal themes to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(entries); err != nil {
			return fmt.Errorf("failed to marshal themes to YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown output format: %s (must be table, json or yaml)", format)
	}
}

func printThemesTable(w io.Writer, entries []themeEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No themes available.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "NAME\tDISPLAY NAME\tBACKGROUND\tACCENT\tSOURCE\tDESCRIPTION\n")

	for _, e := range entries {
		description := e.Description
		if len(description) > 50 {
			description = description[:47] + "..."
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Name, e.DisplayName, e.BackgroundStyle, e.AccentColor, e.Source, description)
	}

	return tw.Flush()
}
