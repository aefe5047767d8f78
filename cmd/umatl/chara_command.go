package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"umatl/internal/archive"
	"umatl/internal/batch"
	"umatl/internal/chara"
	"umatl/internal/runlock"
)

func newCharaCommand(ctx *commandContext) *cobra.Command {
	var archiveAfter bool

	cmd := &cobra.Command{
		Use:   "chara",
		Short: "Translate the character system-text table",
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

			translator := chara.NewTranslator(client,
				cfg.Chara.SourcePath, cfg.Chara.OutputPath, cfg.Chara.ReferencePath, logger)
			orchestrator := batch.New(nil, translator, logger)

			started := time.Now()
			stats, err := orchestrator.RunCharacterBatch(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printRunSummary(out, "chara", stats, time.Since(started))

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
