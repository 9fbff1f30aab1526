package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/pressroom"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Long: `The serve command starts the web server. With --watch it also watches the
content directories and drops the collection cache whenever a file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := pressroom.New(c.cfg, pressroom.WithLogger(c.logger))
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Start(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :3000)")
	cmd.Flags().Bool("watch", false, "invalidate the cache when content changes")
	_ = c.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = c.v.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	return cmd
}
