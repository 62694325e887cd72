package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// syncBanlistCmd represents the sync-banlist command
var syncBanlistCmd = &cobra.Command{
	Use:   "sync-banlist",
	Short: "Sync the TCG and OCG banlists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer p.close()

		if _, err := p.cardSync(p.log).SyncBanlist(cmd.Context()); err != nil {
			return fmt.Errorf("banlist sync aborted: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncBanlistCmd)
}
