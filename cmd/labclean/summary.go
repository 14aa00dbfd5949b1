package main

import (
	"fmt"
	"io"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/pipeline"
)

// printSummary writes one line per table followed by the totals.
func printSummary(w io.Writer, rep pipeline.Report) {
	for _, res := range rep.Results {
		switch res.Outcome {
		case pipeline.OutcomeSuccess:
			fmt.Fprintf(w, "%-8s %-20s rows=%d dropped=%d -> %s\n",
				res.Outcome, res.Table, res.Stats.Written, res.Stats.Dropped, res.Output)
		default:
			fmt.Fprintf(w, "%-8s %-20s %s\n", res.Outcome, res.Table, res.Reason)
		}
	}
	ok, skipped, failed := rep.Counts()
	fmt.Fprintf(w, "cleaned=%d skipped=%d failed=%d", ok, skipped, failed)
	if rep.Manifest != "" {
		fmt.Fprintf(w, " manifest=%s", rep.Manifest)
	}
	fmt.Fprintln(w)
}
