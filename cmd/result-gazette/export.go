// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/result-gazette/internal/archive"
	"github.com/pdiddy/result-gazette/internal/report"
	"github.com/pdiddy/result-gazette/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-render an archived run to a document",
	Long: `Export reads a previously archived run from the SQLite archive and
renders it to any supported format without hitting the portal again.
Use --list to see archived runs; without --run the latest run is used.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("db", "results.db", "archive database path")
	exportCmd.Flags().Int64("run", 0, "run ID to export (0 = latest)")
	exportCmd.Flags().String("out", defaultOutput, "output document path")
	exportCmd.Flags().String("format", "", "output format: pdf, xlsx, yaml, or json (default: from --out extension)")
	exportCmd.Flags().String("title", "", "document title")
	exportCmd.Flags().Bool("list", false, "list archived runs instead of exporting")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	store, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	if list, _ := cmd.Flags().GetBool("list"); list {
		runs, err := store.Runs(ctx)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No archived runs.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tDATE\tRANGE\tOK\tSERVER\tFAILED")
		for _, r := range runs {
			fmt.Fprintf(tw, "%d\t%s\t%d-%d\t%d\t%d\t%d\n",
				r.ID, r.CreatedAt.Format(time.DateTime), r.Start, r.End,
				r.Succeeded, r.ServerErrors, r.Failed)
		}
		return tw.Flush()
	}

	runID, _ := cmd.Flags().GetInt64("run")
	if runID == 0 {
		runID, err = store.LatestRunID(ctx)
		if err != nil {
			return err
		}
	}

	records, err := store.Records(ctx, runID)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	title, _ := cmd.Flags().GetString("title")
	formatFlag, _ := cmd.Flags().GetString("format")

	repCfg := types.ReportConfig{
		OutputPath: out,
		Title:      title,
		Format:     resolveFormat(formatFlag, out),
	}
	if err := report.Write(records, repCfg); err != nil {
		return err
	}
	fmt.Printf("Exported run %d to %s\n", runID, out)
	return nil
}
