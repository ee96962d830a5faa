package main

import (
	"context"

	"github.com/spf13/cobra"

	"itempatch/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	sess, _, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	sess.Start(ctx)

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	server := mcp.NewServer(sess, db, version)
	log.Info("serving item lookups over stdio")
	return server.Run(ctx, &sdk.StdioTransport{})
}
