// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/result-gazette/internal/archive"
	"github.com/pdiddy/result-gazette/internal/portal"
	"github.com/pdiddy/result-gazette/internal/report"
	"github.com/pdiddy/result-gazette/internal/scrape"
	"github.com/pdiddy/result-gazette/pkg/types"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "Mozilla/5.0"
	defaultOutput    = "results_summary.pdf"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch results for a roll-number range and write the summary document",
	Long: `Scrape iterates every roll number in [--start, --end] in ascending order,
submits the results search form once per roll, and renders all collected
records into one summary table. A failed lookup becomes a record carrying
the error text in its result column; the run continues to the next roll.

With --db the finished run is also archived to a SQLite database for
later re-rendering via export.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().Int("start", 0, "first roll number (inclusive)")
	scrapeCmd.Flags().Int("end", 0, "last roll number (inclusive)")
	scrapeCmd.Flags().String("url", "", "results page URL (default: the board portal)")
	scrapeCmd.Flags().String("out", defaultOutput, "output document path")
	scrapeCmd.Flags().String("format", "", "output format: pdf, xlsx, yaml, or json (default: from --out extension)")
	scrapeCmd.Flags().String("title", "", "document title")
	scrapeCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 20s)")
	scrapeCmd.Flags().Duration("delay", 0, "delay between consecutive lookups")
	scrapeCmd.Flags().Int("max-retries", 0, "retries on HTTP 429 (0 = single attempt per call)")
	scrapeCmd.Flags().String("db", "", "archive database path (empty = no archive)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	if start <= 0 || end <= 0 {
		return fmt.Errorf("provide --start and --end roll numbers")
	}
	if end < start {
		return fmt.Errorf("--end (%d) must not be below --start (%d)", end, start)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	baseURL, _ := cmd.Flags().GetString("url")
	if baseURL == "" {
		baseURL = viper.GetString("scrape.base_url")
	}

	cfg := types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		BaseURL:    baseURL,
		Start:      start,
		End:        end,
		Delay:      delay,
		MaxRetries: maxRetries,
	}

	// One connection context for the whole run: cookies and connection
	// reuse are shared across every token fetch and submission.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("creating cookie jar: %w", err)
	}
	client := &http.Client{
		Timeout: cfg.Timeout,
		Jar:     jar,
	}

	result, err := scrape.Run(cmd.Context(), portal.New(client, cfg), cfg, os.Stdout)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = viper.GetString("report.title")
	}
	formatFlag, _ := cmd.Flags().GetString("format")

	repCfg := types.ReportConfig{
		OutputPath: out,
		Title:      title,
		Format:     resolveFormat(formatFlag, out),
	}
	if err := report.Write(result.Records, repCfg); err != nil {
		return err
	}
	fmt.Printf("Summary written: %s\n", out)

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath != "" {
		store, err := archive.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runID, err := store.SaveRun(cmd.Context(), cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("Archived run %d to %s\n", runID, dbPath)
	}

	return nil
}

// resolveFormat picks the report format from the explicit flag first,
// then the output file extension, defaulting to PDF.
func resolveFormat(flag, out string) types.ReportFormat {
	if flag != "" {
		return types.ReportFormat(flag)
	}
	switch filepath.Ext(out) {
	case ".xlsx":
		return types.FormatXLSX
	case ".yaml", ".yml":
		return types.FormatYAML
	case ".json":
		return types.FormatJSON
	default:
		return types.FormatPDF
	}
}
