package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sadt/server"
	"sadt/store"
	"sadt/store/postgres"
	"sadt/ui"
)

func serveCmd() *cobra.Command {
	var (
		addr        string
		dir         string
		databaseURL string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagrams over HTTP",
		Long: `Expose a diagram store as a JSON API with export, code and doc endpoints.

  sadt serve --dir ./diagrams
  sadt serve --database-url postgres://localhost/sadt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("dir") {
				cfg.Server.Store, cfg.Server.Dir = "file", dir
			}
			if cmd.Flags().Changed("database-url") {
				cfg.Server.Store, cfg.Server.DatabaseURL = "postgres", databaseURL
			}
			closeLog, err := setupLogging(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			srv, err := server.New(s, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s serving %s store on %s\n",
				ui.Brand.Sprint("sadt"), cfg.Server.Store, cfg.Server.Addr)

			errc := make(chan error, 1)
			go func() { errc <- srv.Listen(cfg.Server.Addr) }()
			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Serve diagrams from this directory")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Serve diagrams from this PostgreSQL database")
	return cmd
}

// openStore opens the store selected by the server config.
func openStore(ctx context.Context) (store.Store, func(), error) {
	switch cfg.Server.Store {
	case "postgres":
		if cfg.Server.DatabaseURL == "" {
			return nil, nil, errors.New("server.database_url is required for the postgres store")
		}
		s, pool, err := postgres.Open(ctx, cfg.Server.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, pool.Close, nil
	default:
		s, err := store.NewFileStore(cfg.Server.Dir, cfg.DiagramOptions()...)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}
