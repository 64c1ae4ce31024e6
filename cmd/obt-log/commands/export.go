package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/secure-iot/obt-go/pkg/log"
)

var csvHeader = []string{"timestamp", "component", "category", "op", "handle", "device_id", "peer_id", "success", "code", "message"}

// RunExport writes the matching events of path as JSON lines or CSV to
// output, or to w when output is empty.
func RunExport(path, format, output string, opts FilterOptions, w io.Writer) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(event log.Event) []string {
	var handle, success, code, message string
	if event.Handle != nil {
		handle = strconv.Itoa(*event.Handle)
	}
	switch {
	case event.Completion != nil:
		success = strconv.FormatBool(event.Completion.Success)
		code = strconv.Itoa(int(event.Completion.Code))
		message = event.Completion.Message
	case event.Rejection != nil:
		success = "false"
		code = strconv.Itoa(event.Rejection.Code)
	case event.Error != nil:
		success = "false"
		message = event.Error.Message
	}
	return []string{
		event.Timestamp.UTC().Format(timeLayout),
		event.Component.String(),
		event.Category.String(),
		event.Op,
		handle,
		event.DeviceID,
		event.PeerID,
		success,
		code,
		message,
	}
}
