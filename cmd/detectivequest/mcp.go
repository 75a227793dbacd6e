package main

import (
	"log/slog"

	"detectivequest/internal/mcpserver"
	"github.com/spf13/cobra"
)

var defaultOrigins = []string{"http://localhost", "http://127.0.0.1"}

func newMCPCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var opts mcpserver.Options

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the game as an MCP tool over Streamable HTTP",
		Long:  "Runs a Model Context Protocol server exposing a single command tool that plays one shared investigation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := resolveSettings(cmd, lookupEnv)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				opts.Addr = st.cfg.MCPAddr
			}
			if !cmd.Flags().Changed("token") {
				opts.Token = st.cfg.MCPToken
			}
			if len(opts.Origins) == 0 {
				opts.Origins = defaultOrigins
			}
			if opts.Token == "" {
				st.logger.Warn("MCP server runs without a bearer token", slog.String("addr", opts.Addr))
			}

			server := mcpserver.New(st.kase, st.strict, st.logger)
			return server.ListenAndServe(cmd.Context(), opts)
		},
	}

	flags := mcpCmd.Flags()
	flags.StringVar(&opts.Addr, "addr", "127.0.0.1:8765", "Listen address")
	flags.StringVar(&opts.Path, "path", "/mcp", "Endpoint path")
	flags.StringVar(&opts.Token, "token", "", "Bearer token required on every request (optional)")
	flags.StringSliceVar(&opts.Origins, "origin", nil, "Allowed Origin header, repeatable (default: localhost)")
	flags.BoolVar(&opts.JSONResponse, "json-response", false, "Answer with JSON instead of SSE streams")
	flags.BoolVar(&opts.Stateless, "stateless", false, "Do not keep MCP sessions between requests")

	return mcpCmd
}
