package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cac-decision/internal/intake"
	"cac-decision/internal/present"
	"cac-decision/internal/session"
)

const interactiveHelp = `Commands:
  score <n>          set the CAC score
  age <n>            set the age in years
  diabetes on|off    toggle diabetes mellitus
  smoker on|off      toggle current or former smoker
  family on|off      toggle family history of premature CAD
  calculate          evaluate the current input
  show               show the current input and result
  reset              clear all input
  quit               exit`

// NewInteractiveCommand creates the 'cac interactive' command
func NewInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Enter patient details step by step",
		Long:  "Start a line-oriented session that mirrors the calculator form.\n\n" + interactiveHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return runInteractive(cmd.InOrStdin(), out, present.DetectOptions(out))
		},
	}
}

var errQuit = errors.New("quit")

func runInteractive(in io.Reader, out io.Writer, opts present.Options) error {
	s := session.New()
	fmt.Fprintln(out, present.AwaitingInput)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		err := handleLine(s, line, out, opts)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func handleLine(s *session.Session, line string, out io.Writer, opts present.Options) error {
	fields := strings.Fields(line)
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "score", "age":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <n>", command)
		}
		if command == "score" {
			s.SetScore(args[0])
		} else {
			s.SetAge(args[0])
		}
	case "diabetes", "smoker", "family":
		on, err := parseToggle(command, args)
		if err != nil {
			return err
		}
		switch command {
		case "diabetes":
			s.SetDiabetes(on)
		case "smoker":
			s.SetSmoker(on)
		default:
			s.SetFamilyHistory(on)
		}
	case "calculate", "calc":
		rec, err := s.Calculate()
		if err != nil {
			var reasons []string
			for _, fe := range intake.FieldErrors(err) {
				reasons = append(reasons, fe.Error())
			}
			return fmt.Errorf("cannot calculate: %s", strings.Join(reasons, "; "))
		}
		return present.Render(out, rec, opts)
	case "show":
		form := s.Form()
		fmt.Fprintf(out, "state=%s score=%q age=%q diabetes=%t smoker=%t family=%t\n",
			s.State(), form.CACScore, form.Age, form.HasDiabetes, form.IsSmoker, form.FamilyHistory)
		if rec, ok := s.Result(); ok {
			return present.Render(out, rec, opts)
		}
		fmt.Fprintln(out, present.AwaitingInput)
	case "reset":
		s.Reset()
		fmt.Fprintln(out, present.AwaitingInput)
	case "help", "?":
		fmt.Fprintln(out, interactiveHelp)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", command)
	}
	return nil
}

func parseToggle(command string, args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("usage: %s on|off", command)
	}
	switch strings.ToLower(args[0]) {
	case "on", "yes", "true", "y":
		return true, nil
	case "off", "no", "false", "n":
		return false, nil
	default:
		return false, fmt.Errorf("usage: %s on|off", command)
	}
}
