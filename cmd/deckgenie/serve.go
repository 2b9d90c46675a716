package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	httpadapter "github.com/fredcamaral/deckgenie/internal/adapters/primary/http"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deck generation form over HTTP",
		Long: `Start an HTTP server with a form for generating decks. Submitting
the form returns the finished deck as a download. The same endpoint
accepts JSON:

  curl -X POST localhost:8080/generate \
    -H 'Content-Type: application/json' \
    -d '{"topic":"Remote work","format":"pdf"}' -o deck.pdf

Example:
  deckgenie serve
  deckgenie serve --host 0.0.0.0 --port 9000 --theme business`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().IntP("port", "p", 0, "Port to serve on (overrides config)")
	cmd.Flags().String("host", "", "Host to bind to (overrides config)")
	cmd.Flags().StringP("theme", "t", "", "Default theme (overrides config)")
	cmd.Flags().StringP("format", "f", "", "Default output format (overrides config)")
	cmd.Flags().Bool("no-images", false, "Skip image lookup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cmd, "", sourceOptional)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	server := httpadapter.NewServer(a.deck, &a.config.Server, a.logger.Component("http"))
	if err := server.Start(ctx, a.config.Server.Port, a.config.Server.Host); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (press Ctrl+C to stop)\n", server.Addr())

	<-ctx.Done()

	a.logger.Info("Shutting down server")
	// The command context is already cancelled, so shut down on a fresh one
	if err := server.Stop(context.Background()); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}

	return nil
}
