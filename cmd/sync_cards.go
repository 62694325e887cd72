package cmd

import (
	"fmt"

	"ygo-pipelines/feature/catalog"

	"github.com/spf13/cobra"
)

var (
	cardSet          string
	skipTranslations bool
)

// syncCardsCmd represents the sync-cards command
var syncCardsCmd = &cobra.Command{
	Use:   "sync-cards",
	Short: "Sync card metadata, translations and banlist entries",
	Long: `Fetches the card catalog, compares it with the database and writes only the
cards that are new or changed. Running it twice in a row performs no writes
the second time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer p.close()

		report, err := p.cardSync(p.log).SyncCards(cmd.Context(), catalog.Filter{
			CardSet:          cardSet,
			SkipTranslations: skipTranslations,
		})
		if err != nil {
			return fmt.Errorf("card sync aborted: %w", err)
		}
		if report.Failed > 0 {
			return fmt.Errorf("%d cards failed to sync: %v", report.Failed, report.FailedIDs)
		}
		return nil
	},
}

func init() {
	syncCardsCmd.Flags().StringVarP(&cardSet, "cardset", "c", "", "Only sync cards printed in this set")
	syncCardsCmd.Flags().BoolVar(&skipTranslations, "skip-translations", false, "Do not fetch translated names and descriptions")

	RootCmd.AddCommand(syncCardsCmd)
}
