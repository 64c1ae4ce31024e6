// Package interactive provides the menu-driven front end of the onboarding
// tool.
package interactive

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/obt"
)

const mainPrompt = "obt> "

var errAborted = errors.New("aborted")

// Backend exposes simulator state the menu can show. It may be nil.
type Backend interface {
	DisplayedPIN(id device.ID) (string, bool)
	ManufacturerCA() *x509.Certificate
}

// Shell is the interactive menu.
type Shell struct {
	rl  *readline.Instance
	svc *obt.Service
	sim Backend

	out  io.Writer
	ok   *color.Color
	bad  *color.Color
	note *color.Color
	head *color.Color
}

// New creates a shell reading from the terminal.
func New() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          mainPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return newShell(rl, rl.Stdout()), nil
}

func newShell(rl *readline.Instance, out io.Writer) *Shell {
	return &Shell{
		rl:   rl,
		out:  out,
		ok:   color.New(color.FgGreen),
		bad:  color.New(color.FgRed),
		note: color.New(color.FgYellow),
		head: color.New(color.FgCyan, color.Bold),
	}
}

// Stdout returns a writer that coordinates with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that coordinates with the prompt.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Close releases the terminal.
func (s *Shell) Close() {
	_ = s.rl.Close()
}

// Run reads menu selections until exit, EOF or ctx is done, then calls
// cancel. sim may be nil.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc, svc *obt.Service, sim Backend) {
	defer cancel()
	s.svc = svc
	s.sim = sim
	svc.Registry().OnChange(s.showTransition)

	s.printMenu()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.rl.SetPrompt(mainPrompt)
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		choice, ok := parseChoice(input)
		if !ok {
			s.bad.Fprintf(s.out, "Unknown selection: %s (enter 0 for the menu)\n", input)
			continue
		}
		if choice == cmdExit {
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
		s.dispatch(choice)
	}
}

// ask prompts for one line. Ctrl-C aborts the current command.
func (s *Shell) ask(prompt string) (string, error) {
	s.rl.SetPrompt(prompt)
	defer s.rl.SetPrompt(mainPrompt)
	line, err := s.rl.Readline()
	if err != nil {
		return "", errAborted
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) askInt(prompt string) (int, error) {
	line, err := s.ask(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", line)
	}
	return n, nil
}

// askDefault prompts for a value, returning def for empty input.
func (s *Shell) askDefault(prompt, def string) (string, error) {
	line, err := s.ask(fmt.Sprintf("%s [%s]: ", prompt, def))
	if err != nil || line != "" {
		return line, err
	}
	return def, nil
}

func (s *Shell) askYesNo(prompt string) (bool, error) {
	line, err := s.ask(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes"), nil
}

// selectDevice lists devices and returns the chosen one.
func (s *Shell) selectDevice(title string, devices []device.Descriptor) (device.Descriptor, error) {
	if len(devices) == 0 {
		return device.Descriptor{}, fmt.Errorf("no %s devices", title)
	}
	s.head.Fprintf(s.out, "\n%s devices:\n", strings.ToUpper(title[:1])+title[1:])
	for i, d := range devices {
		fmt.Fprintln(s.out, formatDevice(i, d))
	}
	i, err := s.askInt("\nSelect device: ")
	if err != nil {
		return device.Descriptor{}, err
	}
	if i < 0 || i >= len(devices) {
		return device.Descriptor{}, fmt.Errorf("%w: %d", device.ErrInvalidSelection, i)
	}
	return devices[i], nil
}

func (s *Shell) selectOwned() (device.Descriptor, error) {
	return s.selectDevice("owned", s.svc.Registry().ListOwned())
}

func (s *Shell) selectUnowned() (device.Descriptor, error) {
	return s.selectDevice("unowned", s.svc.Registry().ListUnowned())
}

func (s *Shell) printMenu() {
	s.head.Fprintln(s.out, "\n################################################")
	s.head.Fprintln(s.out, "Onboarding Tool")
	s.head.Fprintln(s.out, "################################################")
	fmt.Fprint(s.out, menuText)
	if s.sim != nil {
		fmt.Fprintln(s.out, "[95] Show simulated manufacturer CA")
	}
	s.head.Fprintln(s.out, "################################################")
}

// showTransition lists devices as discovery and ownership change them.
func (s *Shell) showTransition(t device.Transition) {
	switch t.Change {
	case device.ChangeAdded:
		s.ok.Fprintf(s.out, "Discovered %s device: %s\n", strings.ToLower(t.Collection.String()), t.Device)
	case device.ChangeRenamed:
		fmt.Fprintf(s.out, "Renamed %s device: %s\n", strings.ToLower(t.Collection.String()), t.Device)
	case device.ChangePromoted:
		s.ok.Fprintf(s.out, "Now owned: %s\n", t.Device)
	case device.ChangeRemoved:
		s.note.Fprintf(s.out, "Removed %s device: %s\n", strings.ToLower(t.Collection.String()), t.Device)
	}
}

// failf reports an error according to where it was detected.
func (s *Shell) failf(label string, err error) {
	if errors.Is(err, errAborted) {
		s.note.Fprintf(s.out, "%s: aborted\n", label)
		return
	}
	s.bad.Fprintf(s.out, "%s: %s\n", label, describeError(err))
}
