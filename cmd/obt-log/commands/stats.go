package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/secure-iot/obt-go/pkg/log"
)

// RunStats prints per-operation statistics for the matching events of path.
func RunStats(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	stats := log.NewStats()
	truncated := false
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			truncated = true
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.Add(event)
	}

	printStats(w, stats)
	if truncated {
		failColor.Fprintln(w, "\nJournal ends with a truncated event.")
	}
	return nil
}

func printStats(w io.Writer, stats *log.Stats) {
	fmt.Fprintf(w, "Events: %d\n", stats.Events)
	if stats.Events == 0 {
		return
	}
	fmt.Fprintf(w, "Time range: %s - %s (%s)\n",
		stats.First.UTC().Format(timeLayout),
		stats.Last.UTC().Format(timeLayout),
		formatDuration(stats.Last.Sub(stats.First)))
	fmt.Fprintf(w, "Devices: %d\n", len(stats.Devices))

	ops := stats.Ops()
	if len(ops) > 0 {
		fmt.Fprintln(w, "\nOperations:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  OP\tREQ\tREJ\tOK\tFAIL\tDUP\tPENDING\tMEAN LATENCY")
		for _, op := range ops {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
				op.Op, op.Requests, op.Rejections, op.Successes, op.Failures,
				op.Duplicates, op.Pending(), formatDuration(op.MeanLatency()))
		}
		_ = tw.Flush()
	}

	ids := make([]string, 0, len(stats.Devices))
	for id := range stats.Devices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if stats.Devices[ids[i]] != stats.Devices[ids[j]] {
			return stats.Devices[ids[i]] > stats.Devices[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > 0 {
		fmt.Fprintln(w, "\nEvents per device:")
		for _, id := range ids {
			fmt.Fprintf(w, "  %s: %d\n", id, stats.Devices[id])
		}
	}
}
