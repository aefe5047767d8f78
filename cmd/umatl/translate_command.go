package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"umatl/internal/archive"
	"umatl/internal/batch"
	"umatl/internal/runlock"
	"umatl/internal/story"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var archiveAfter bool

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate untranslated story documents under the raw directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.newBackendClient()
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.LockFilePath())
			if err != nil {
				return err
			}
			defer lock.Release()

			translator := story.NewTranslator(client, cfg.Paths.RawDir, cfg.Paths.TranslatedDir, logger)
			orchestrator := batch.New(translator, nil, logger)

			started := time.Now()
			stats, err := orchestrator.RunStoryBatch(cmd.Context(), cfg.Paths.RawDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printRunSummary(out, "story", stats, time.Since(started))

			if archiveAfter {
				archiver := archive.New(cfg.Paths.TranslatedDir, cfg.Paths.ArchiveDir, logger)
				target, err := archiver.Create(stats.OutputPaths())
				if err != nil {
					return err
				}
				if target != "" {
					fmt.Fprintf(out, "Archived %d file(s) to %s\n", len(stats.OutputPaths()), target)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&archiveAfter, "archive", false, "Bundle this run's outputs into the next update archive")
	return cmd
}
