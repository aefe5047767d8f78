package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"umatl/internal/mdb"
	"umatl/internal/services"
)

func newMDBCommand(ctx *commandContext) *cobra.Command {
	mdbCmd := &cobra.Command{
		Use:   "mdb",
		Short: "Master database utilities",
	}
	mdbCmd.AddCommand(newMDBDumpCommand(ctx))
	return mdbCmd
}

func newMDBDumpCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Dump translatable tables from the master database to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.MDB.Path) == "" {
				return services.Wrap(services.ErrConfiguration, "mdb", "dump", "mdb.path is not configured", nil)
			}

			dumper := mdb.NewDumper(cfg.MDB.Path, logger)
			out := cmd.OutOrStdout()

			written, err := dumper.DumpTextData(cmd.Context(), cfg.MDB.DumpDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Dumped %d text_data categor(ies) to %s\n", len(written), cfg.MDB.DumpDir)

			if strings.TrimSpace(cfg.Chara.SourcePath) != "" {
				if err := dumper.DumpCharacterSystemText(cmd.Context(), cfg.Chara.SourcePath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Dumped character_system_text to %s\n", cfg.Chara.SourcePath)
			}
			return nil
		},
	}
}
