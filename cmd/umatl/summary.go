package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"umatl/internal/batch"
)

// printRunSummary renders the run counters as a table on a terminal and as
// plain key=value lines otherwise, so logs stay grep-friendly.
func printRunSummary(out io.Writer, mode string, stats *batch.RunStats, elapsed time.Duration) {
	if !writerIsTerminal(out) {
		fmt.Fprintf(out, "run=%s mode=%s translated=%d skipped=%d failed=%d written=%d elapsed=%s\n",
			stats.RunID, mode, stats.Translated, stats.Skipped, stats.Failed,
			len(stats.OutputPaths()), elapsed.Round(time.Millisecond))
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Run", "Mode", "Translated", "Skipped", "Failed", "Written", "Elapsed"})
	tw.AppendRow(table.Row{
		stats.RunID,
		mode,
		strconv.Itoa(stats.Translated),
		strconv.Itoa(stats.Skipped),
		strconv.Itoa(stats.Failed),
		strconv.Itoa(len(stats.OutputPaths())),
		elapsed.Round(time.Millisecond).String(),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	fmt.Fprintln(out, tw.Render())
}

func writerIsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
