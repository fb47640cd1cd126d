package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed the default roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, _, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		log.Info("migration complete")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
