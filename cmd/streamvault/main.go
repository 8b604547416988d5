package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/streamvault-media/streamvault/internal/catalog"
	"github.com/streamvault-media/streamvault/internal/logger"
	"github.com/streamvault-media/streamvault/internal/server"
	streamvault "github.com/streamvault-media/streamvault/internal/server/config"
	"github.com/streamvault-media/streamvault/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "streamvault",
		Short: "StreamVault media browsing service",
		Long:  `Production server for the StreamVault single-page app plus a catalog API client for ad-hoc queries`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the SPA bundle and operational endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, corsConfigs, err := streamvault.NewServerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return err
	}

	serverLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	serverLogger.Info(fmt.Sprintf("starting streamvault %s (serving %s)", version.Get().Version, cfg.StaticDir))

	assets := os.DirFS(cfg.StaticDir)
	router := chi.NewRouter()

	srv := server.NewServer(cfg, corsConfigs, serverLogger, assets, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		serverLogger.Error(fmt.Sprintf("server error: %v", err))
		return err
	}

	serverLogger.Info("server shutdown complete")
	return nil
}

// catalogCmd exposes the catalog client from the terminal - handy for
// checking connectivity and inspecting what the SPA will render.
func catalogCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the movie catalog API",
	}
	cmd.PersistentFlags().IntVar(&page, "page", 1, "result page to fetch")

	cmd.AddCommand(&cobra.Command{
		Use:   "trending [day|week]",
		Short: "List trending movies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			window := ""
			if len(args) == 1 {
				window = args[0]
			}
			client, err := newCatalogClient()
			if err != nil {
				return err
			}
			result, err := client.Trending(cmd.Context(), window)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "popular",
		Short: "List popular movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newCatalogClient()
			if err != nil {
				return err
			}
			result, err := client.Popular(cmd.Context(), page)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newCatalogClient()
			if err != nil {
				return err
			}
			result, err := client.Search(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "movie <id>",
		Short: "Show full details for one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return fmt.Errorf("movie id must be numeric: %s", args[0])
			}
			client, err := newCatalogClient()
			if err != nil {
				return err
			}
			result, err := client.MovieDetails(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	})

	return cmd
}

func newCatalogClient() (*catalog.Client, error) {
	cfg, _, err := streamvault.NewServerConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	catalogLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	return catalog.NewClient(cfg.CatalogAPIBaseURL, cfg.CatalogAPIKey, catalogLogger), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
