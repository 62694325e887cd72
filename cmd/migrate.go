package cmd

import (
	"ygo-pipelines/feature/cards/store"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the pipeline tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer p.close()

		if err := store.Migrate(cmd.Context(), p.db); err != nil {
			return err
		}
		p.log.Info("Migration completed")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
