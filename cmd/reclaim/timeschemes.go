package main

import "github.com/spf13/cobra"

func newTimeSchemesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "timeschemes",
		Aliases: []string{"schemes"},
		Short:   "List time schemes",
		Long:    `List the account's time schemes with their IDs and policy types.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := getClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			schemes, err := client.ListTimeSchemes(cmd.Context())
			if err != nil {
				return err
			}

			printTimeSchemes(cmd.OutOrStdout(), schemes, g.format())
			return nil
		},
	}
}
