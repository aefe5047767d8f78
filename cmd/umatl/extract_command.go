package main

import (
	"github.com/spf13/cobra"

	"umatl/internal/extractor"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		assetType string
		storyID   string
		destDir   string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run the external asset extractor to pull raw story JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			client, err := extractor.New(cfg.Extractor.Binary, cfg.Extractor.TimeoutSeconds, logger)
			if err != nil {
				return err
			}

			dest := destDir
			if dest == "" {
				dest = cfg.Paths.RawDir
			}
			return client.Extract(cmd.Context(), extractor.Request{
				AssetType: assetType,
				StoryID:   storyID,
				DestDir:   dest,
				Overwrite: overwrite,
			})
		},
	}

	cmd.Flags().StringVar(&assetType, "type", "story", "Asset type to extract")
	cmd.Flags().StringVar(&storyID, "story-id", "", "Restrict extraction to one story id")
	cmd.Flags().StringVar(&destDir, "dest", "", "Destination directory (defaults to the raw directory)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite files already extracted")
	return cmd
}
