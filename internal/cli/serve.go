package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardpress/internal/server"
)

// serveCommand creates the serve command for the layout HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		artRoot string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve card and sheet layouts over HTTP",
		Long: `Serve starts an HTTP service that renders posted card JSON to SVG or a
region listing and plans sheet grids. Art references resolve inside
--art-root only; without it every card renders with the art placeholder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.config().Server.Addr
			}
			runner, closeRunner, err := c.newRunner(cmd.Context(), runnerOpts{})
			if err != nil {
				return err
			}
			defer closeRunner()
			runner.Art = server.ConfinedArt(artRoot)

			printInfo("Serving on %s", addr)
			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from config)")
	cmd.Flags().StringVar(&artRoot, "art-root", "", "directory card art is served from")
	return cmd
}
