package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/secure-iot/obt-go/pkg/log"
)

// FilterOptions are the filter flags shared by every command.
type FilterOptions struct {
	Op           string
	DeviceID     string
	Component    string
	Category     string
	TimeStart    string
	TimeEnd      string
	FailuresOnly bool
}

// Build converts the options to a journal filter.
func (o FilterOptions) Build() (log.Filter, error) {
	f := log.Filter{
		OpPrefix:     o.Op,
		DeviceID:     o.DeviceID,
		FailuresOnly: o.FailuresOnly,
	}

	if o.Component != "" {
		c, ok := log.ParseComponent(strings.ToUpper(o.Component))
		if !ok {
			return f, fmt.Errorf("invalid component: %s (valid: tool, registry, discovery, otm, provisioning)", o.Component)
		}
		f.Component = &c
	}

	if o.Category != "" {
		c, ok := log.ParseCategory(strings.ToUpper(o.Category))
		if !ok {
			return f, fmt.Errorf("invalid category: %s (valid: request, rejection, completion, duplicate, registry, error)", o.Category)
		}
		f.Category = &c
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return f, fmt.Errorf("invalid time-start format: %w", err)
		}
		f.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return f, fmt.Errorf("invalid time-end format: %w", err)
		}
		f.TimeEnd = &t
	}
	return f, nil
}

// RunFilter writes the matching events of path to a new journal.
func RunFilter(path, output string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	out, err := log.NewFileLogger(output)
	if err != nil {
		return fmt.Errorf("failed to create output journal: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = out.Close()
			return fmt.Errorf("failed to read event: %w", err)
		}
		out.Log(event)
		count++
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output journal: %w", err)
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, output)
	return nil
}
