package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the patch store from the CLI",
	}
	cmd.AddCommand(queryTierCmd())
	cmd.AddCommand(queryItemCmd())
	cmd.AddCommand(querySQLCmd())
	return cmd
}
