package cmd

import (
	"fmt"

	"ygo-pipelines/feature/cards/models"
	"ygo-pipelines/feature/images"

	"github.com/spf13/cobra"
)

var (
	forceImages   bool
	imageLimit    int
	imageWorkers  int
	croppedImages bool
)

// syncImagesCmd represents the sync-images command
var syncImagesCmd = &cobra.Command{
	Use:   "sync-images",
	Short: "Copy card images into the bucket",
	Long: `Downloads the art of every card without a stored image URL, uploads it to the
bucket and records the public URL. Use --force to re-process every card.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if imageLimit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}

		p, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer p.close()

		opts := images.Options{
			Variant: models.VariantFull,
			Force:   forceImages,
			Limit:   imageLimit,
			Workers: imageWorkers,
		}
		if croppedImages {
			opts.Variant = models.VariantCropped
		}

		summary, err := p.imageSync(p.log).Sync(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("image sync aborted: %w", err)
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d images failed", summary.Failed, summary.Total)
		}
		return nil
	},
}

func init() {
	syncImagesCmd.Flags().BoolVarP(&forceImages, "force", "f", false, "Re-download images that already have a stored URL")
	syncImagesCmd.Flags().IntVarP(&imageLimit, "limit", "l", 0, "Process at most this many cards (0 for all)")
	syncImagesCmd.Flags().IntVarP(&imageWorkers, "workers", "w", 0, "Number of concurrent workers (defaults to images.workers)")
	syncImagesCmd.Flags().BoolVar(&croppedImages, "cropped", false, "Sync the cropped artwork instead of the full card")

	RootCmd.AddCommand(syncImagesCmd)
}
