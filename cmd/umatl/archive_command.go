package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"umatl/internal/archive"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <file>...",
		Short: "Bundle translated files into the next update archive",
		Long: "Bundle the given translated files into the next free update_N.zip. " +
			"Relative paths are resolved against the translated directory.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				if filepath.IsAbs(arg) {
					paths = append(paths, filepath.Clean(arg))
					continue
				}
				paths = append(paths, filepath.Join(cfg.Paths.TranslatedDir, arg))
			}

			archiver := archive.New(cfg.Paths.TranslatedDir, cfg.Paths.ArchiveDir, logger)
			target, err := archiver.Create(paths)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d file(s) to %s\n", len(paths), target)
			return nil
		},
	}
}
