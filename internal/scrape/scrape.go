// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape drives a run over a closed roll-number range: one
// lookup per roll, per-roll failure containment, in-order accumulation.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pdiddy/result-gazette/internal/portal"
	"github.com/pdiddy/result-gazette/pkg/types"
)

// BatchResult holds the outcome of a scrape run. Records contains exactly
// one entry per roll number in ascending order, failures included.
type BatchResult struct {
	Records      []types.Record
	Succeeded    int
	ServerErrors int
	Failed       int
}

// Total returns the number of roll numbers processed.
func (r BatchResult) Total() int {
	return r.Succeeded + r.ServerErrors + r.Failed
}

// HasFailures reports whether any lookup hit an infrastructure failure.
// Server-reported messages (unknown roll numbers) do not count.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Run iterates every roll number in [cfg.Start, cfg.End] in ascending
// order, printing one progress line and one raw-record line per roll.
// Every failure is contained in the record's Result field; the loop never
// aborts because of a single bad roll number. Records are accumulated in
// memory only — nothing is flushed until the caller writes the report.
func Run(ctx context.Context, client *portal.Client, cfg types.ScrapeConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	for roll := cfg.Start; roll <= cfg.End; roll++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if roll > cfg.Start && cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}

		fmt.Fprintf(w, "fetching result for roll no %d...\n", roll)

		rec, err := client.Lookup(ctx, roll)
		if err != nil {
			rec = containRecord(roll, err)
			var perr *portal.Error
			if errors.As(err, &perr) && perr.Kind == portal.KindServerReported {
				result.ServerErrors++
			} else {
				result.Failed++
			}
		} else {
			result.Succeeded++
		}

		fmt.Fprintf(w, "{Roll No: %s, Name: %s, Result: %s}\n", rec.RollNo, rec.Name, rec.Result)
		result.Records = append(result.Records, rec)
	}

	fmt.Fprintf(w, "\nScrape summary: %d succeeded, %d server messages, %d failed (total: %d)\n",
		result.Succeeded, result.ServerErrors, result.Failed, result.Total())
	return result, nil
}

// containRecord maps a typed lookup error to its display record. This is
// the only place error kinds become text: a server-reported message goes
// into Result verbatim, everything else is rendered as "Error: ...".
func containRecord(roll int, err error) types.Record {
	var perr *portal.Error
	if errors.As(err, &perr) && perr.Kind == portal.KindServerReported {
		return types.Record{RollNo: strconv.Itoa(roll), Result: perr.Msg}
	}
	return types.Record{RollNo: strconv.Itoa(roll), Result: fmt.Sprintf("Error: %v", err)}
}
