// Package commands implements the obt-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/secure-iot/obt-go/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

var (
	failColor = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
	dupColor  = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

// RunView prints the matching events of path in human-readable form.
func RunView(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			failColor.Fprintln(w, "(journal truncated)")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes one event: a header line followed by its details.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeLayout)
	handle := "-"
	if event.Handle != nil {
		handle = fmt.Sprintf("%d", *event.Handle)
	}

	header := fmt.Sprintf("%s [h:%s] %-12s %-10s %s", ts, handle,
		event.Component, event.Category, event.Op)
	headerColor(event).Fprintln(w, header)

	if event.DeviceID != "" {
		fmt.Fprintf(w, "  Device: %s\n", event.DeviceID)
	}
	if event.PeerID != "" {
		fmt.Fprintf(w, "  Peer: %s\n", event.PeerID)
	}

	switch {
	case event.Request != nil:
		if event.Request.Scope != "" {
			fmt.Fprintf(w, "  Scope: %s\n", event.Request.Scope)
		}
		if event.Request.Detail != "" {
			fmt.Fprintf(w, "  Detail: %s\n", event.Request.Detail)
		}
	case event.Completion != nil:
		formatCompletion(w, event.Completion)
	case event.Rejection != nil:
		fmt.Fprintf(w, "  Code: %d\n", event.Rejection.Code)
	case event.Registry != nil:
		fmt.Fprintf(w, "  %s %s", event.Registry.Change, event.Registry.Collection)
		if event.Registry.Name != "" {
			fmt.Fprintf(w, " (%s)", event.Registry.Name)
		}
		fmt.Fprintln(w)
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}
	fmt.Fprintln(w)
}

func formatCompletion(w io.Writer, c *log.CompletionEvent) {
	if c.Success {
		fmt.Fprintln(w, "  Result: OK")
	} else {
		fmt.Fprintf(w, "  Result: FAILED (code %d)\n", c.Code)
	}
	if c.Message != "" {
		fmt.Fprintf(w, "  Message: %s\n", c.Message)
	}
	if c.Items > 0 {
		fmt.Fprintf(w, "  Items: %d\n", c.Items)
	}
	if c.Latency != nil {
		fmt.Fprintf(w, "  Latency: %s\n", formatDuration(*c.Latency))
	}
}

func headerColor(event log.Event) *color.Color {
	switch event.Category {
	case log.CategoryRejection, log.CategoryError:
		return failColor
	case log.CategoryDuplicate:
		return dupColor
	case log.CategoryCompletion:
		if event.Completion != nil && !event.Completion.Success {
			return failColor
		}
		return okColor
	case log.CategoryRegistry:
		return dimColor
	default:
		return color.New(color.Reset)
	}
}

// formatDuration renders d with a unit suited to its size.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
