package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deckgenie configuration",
		Long: `Configuration is read from the global file
(~/.config/deckgenie/config.toml), then deckgenie.toml in the working
directory, then DECKGENIE_* environment variables and finally flags.`,
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the global config file with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := newConfigLoader(cmd)
			path := loader.GetGlobalPath()

			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}

			if err := loader.CreateDefaults(cmd.Context(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			encoder := toml.NewEncoder(cmd.OutOrStdout())
			encoder.Indent = "  "
			if err := encoder.Encode(cfg); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			return nil
		},
	}
}
