package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/leapverb/internal/api"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Start an HTTP server exposing the parser as a JSON API:

  POST /v1/parse        {"command": "take lamp"}
  GET  /v1/verbs        verbs, synonyms and rules
  GET  /v1/transcript   commands run in this server's session
  POST /v1/reload       reload the grammar and scripts
  GET  /v1/events       server-sent reload events
  GET  /healthz`,
		Example: `  leapverb serve
  leapverb serve --addr 127.0.0.1:9000 --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().Bool("watch", false, "Reload the grammar and scripts when they change")
	return cmd
}

func runServe(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := cc.Cfg.Serve.Addr
	if cmd.Flags().Changed("addr") {
		addr, _ = cmd.Flags().GetString("addr")
	}
	watch := cc.Cfg.Serve.Watch
	if cmd.Flags().Changed("watch") {
		watch, _ = cmd.Flags().GetBool("watch")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cc.Renderer.Muted("listening on " + addr)
	srv := api.NewServer(api.Config{
		Engine: cc.Engine,
		Addr:   addr,
		Watch:  watch,
		Logger: cc.Logger,
	})
	return srv.Serve(ctx)
}
