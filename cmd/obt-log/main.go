// Command obt-log views and analyzes onboarding tool journals.
//
// Journals are written by obt when started with the -journal flag.
//
// Usage:
//
//	obt-log <command> [flags] <file.journal>
//
// Commands:
//
//	view     View the journal in human-readable format
//	stats    Show per-operation statistics
//	export   Export the journal to JSON lines or CSV
//	filter   Filter the journal and write a new one
//
// Examples:
//
//	# View all events
//	obt-log view obt.journal
//
//	# View only failed operations on one device
//	obt-log view -failures -device 11111111-1111-4111-8111-111111111111 obt.journal
//
//	# Statistics for ownership transfers
//	obt-log stats -op otm. obt.journal
//
//	# Export provisioning events to CSV
//	obt-log export -format csv -component provisioning obt.journal
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/secure-iot/obt-go/cmd/obt-log/commands"
)

const usage = `obt-log - Onboarding Tool Journal Analyzer

Usage:
  obt-log <command> [flags] <file.journal>

Commands:
  view     View the journal in human-readable format
  stats    Show per-operation statistics
  export   Export the journal to JSON lines or CSV
  filter   Filter the journal and write a new one

Use "obt-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set with the shared filter flags.
func newFlagSet(name, summary string, opts *commands.FilterOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "obt-log %s - %s\n\nUsage:\n  obt-log %s [flags] <file.journal>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.Op, "op", "", "Filter by operation prefix (e.g. otm., cred.)")
	fs.StringVar(&opts.DeviceID, "device", "", "Filter by device ID (target or peer)")
	fs.StringVar(&opts.Component, "component", "", "Filter by component (tool, registry, discovery, otm, provisioning)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (request, rejection, completion, duplicate, registry, error)")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.BoolVar(&opts.FailuresOnly, "failures", false, "Only rejections, failed completions and errors")
	return fs
}

// journalArg parses args and returns the journal path.
func journalArg(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: journal path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runView(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("view", "View the journal in human-readable format", &opts)
	path := journalArg(fs, args)
	exitOnError(commands.RunView(path, opts, os.Stdout))
}

func runStats(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("stats", "Show per-operation statistics", &opts)
	path := journalArg(fs, args)
	exitOnError(commands.RunStats(path, opts, os.Stdout))
}

func runExport(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("export", "Export the journal to JSON lines or CSV", &opts)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := journalArg(fs, args)
	exitOnError(commands.RunExport(path, *format, *output, opts, os.Stdout))
}

func runFilter(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("filter", "Filter the journal and write a new one", &opts)
	output := fs.String("o", "", "Output file (required)")
	path := journalArg(fs, args)
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}
	exitOnError(commands.RunFilter(path, *output, opts, os.Stdout))
}
