package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rohankatakam/healthrisk/internal/errors"
	"github.com/rohankatakam/healthrisk/internal/models"
	"github.com/rohankatakam/healthrisk/internal/output"
	"github.com/rohankatakam/healthrisk/internal/register"
	"github.com/rohankatakam/healthrisk/internal/risk"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record several threats and review them together",
	Long: `Reads one threat per line as key=value pairs separated by ';' and keeps
every accepted entry for the session. A summary line is printed after each
accepted entry and the full analysis is printed at the end.

Keys: threat, rule, step, impact, likelihood, sle, aro, controls, effectiveness

Commands:
  show                      print the analysis so far
  edit N key=value; ...     change entry N (1-based) in place
  quit                      end the session

Example:
  threat=Lost laptop; rule=privacy; step=select; impact=7; likelihood=5; sle=50000; aro=0.2`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

// sessionKeys maps the short keys typed in a session to record fields
var sessionKeys = map[string]string{
	"threat":        risk.FieldThreat,
	"rule":          risk.FieldComplianceRule,
	"step":          risk.FieldLifecycleStep,
	"impact":        risk.FieldImpact,
	"likelihood":    risk.FieldLikelihood,
	"sle":           risk.FieldSingleLossExpectancy,
	"aro":           risk.FieldAnnualizedRateOfOccurrence,
	"controls":      risk.FieldControlMeasures,
	"effectiveness": risk.FieldControlEffectiveness,
}

// maxSessionLine bounds one session input line
const maxSessionLine = 1024 * 1024

// assignment is one key=value pair, already mapped to a record field
type assignment struct {
	field string
	value string
}

func runSession(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	engine := newEngine()
	s := &session{
		engine:      engine,
		reg:         register.New(engine, logger),
		formatter:   formatter,
		out:         cmd.OutOrStdout(),
		status:      cmd.ErrOrStderr(),
		interactive: isTerminal(in),
	}
	s.reg.Subscribe(s.onSnapshot)

	if err := s.run(in); err != nil {
		return err
	}
	if err := render(s.formatter, s.reg.Snapshot(), s.out); err != nil {
		return err
	}
	if s.rejected > 0 && !s.interactive {
		return fmt.Errorf("%d of %d entries rejected", s.rejected, s.rejected+s.reg.Len())
	}
	return nil
}

type session struct {
	engine      *risk.Engine
	reg         *register.Register
	formatter   output.Formatter
	out         io.Writer
	status      io.Writer
	interactive bool
	rejected    int
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSessionLine)
	lineNo := 0
	for {
		if s.interactive {
			fmt.Fprint(s.status, "hrisk> ")
		}
		if !scanner.Scan() {
			break
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, rest, _ := strings.Cut(line, " ")
		switch strings.ToLower(word) {
		case "quit", "exit":
			return nil
		case "show":
			if err := render(s.formatter, s.reg.Snapshot(), s.out); err != nil {
				return err
			}
			continue
		case "edit":
			if err := s.edit(rest); err != nil {
				s.report(lineNo, err)
			}
			continue
		}

		if err := s.add(line); err != nil {
			s.rejected++
			s.report(lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeParse, errors.SeverityHigh,
			fmt.Sprintf("failed to read line %d", lineNo+1)).WithContext("max_bytes", maxSessionLine)
	}
	return nil
}

func (s *session) add(line string) error {
	raw, err := parseSessionLine(line)
	if err != nil {
		return err
	}
	in, err := risk.ParseInput(raw)
	if err != nil {
		return err
	}
	_, err = s.reg.Add(risk.New(in))
	return err
}

// edit applies every assignment to a copy of entry N and swaps it in only
// when the whole copy is valid
func (s *session) edit(args string) error {
	index, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	n, err := strconv.Atoi(index)
	records := s.reg.Records()
	if err != nil || n < 1 || n > len(records) {
		return errors.ParseErrorf("edit needs an entry number between 1 and %d, got %q", len(records), index)
	}

	assignments, err := parseAssignments(rest)
	if err != nil {
		return err
	}

	draft := risk.New(records[n-1].Input())
	for _, a := range assignments {
		if err := s.engine.Update(draft, a.field, a.value); err != nil {
			return err
		}
	}
	_, err = s.reg.Replace(n-1, draft)
	return err
}

func (s *session) onSnapshot(snap models.Snapshot) {
	(&output.QuietFormatter{}).Format(snap, s.status)
}

func (s *session) report(lineNo int, err error) {
	if s.interactive {
		fmt.Fprintf(s.status, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.status, "line %d: %v\n", lineNo, err)
}

// parseSessionLine turns "threat=...; impact=7; ..." into a raw form entry
func parseSessionLine(line string) (risk.RawInput, error) {
	assignments, err := parseAssignments(line)
	if err != nil {
		return risk.RawInput{}, err
	}

	var raw risk.RawInput
	for _, a := range assignments {
		switch a.field {
		case risk.FieldThreat:
			raw.Threat = a.value
		case risk.FieldComplianceRule:
			raw.ComplianceRule = a.value
		case risk.FieldLifecycleStep:
			raw.LifecycleStep = a.value
		case risk.FieldImpact:
			raw.Impact = a.value
		case risk.FieldLikelihood:
			raw.Likelihood = a.value
		case risk.FieldSingleLossExpectancy:
			raw.SingleLossExpectancy = a.value
		case risk.FieldAnnualizedRateOfOccurrence:
			raw.AnnualizedRateOfOccurrence = a.value
		case risk.FieldControlMeasures:
			raw.ControlMeasures = a.value
		case risk.FieldControlEffectiveness:
			raw.ControlEffectiveness = a.value
		}
	}
	return raw, nil
}

func parseAssignments(text string) ([]assignment, error) {
	var out []assignment
	seen := make(map[string]bool)
	for _, part := range strings.Split(text, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, errors.ParseErrorf("expected key=value, got %q", part)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		field, known := sessionKeys[key]
		if !known {
			return nil, errors.ParseErrorf("unknown key %q", key).WithContext("field", key)
		}
		if seen[field] {
			return nil, errors.ParseErrorf("key %q given twice", key).WithContext("field", key)
		}
		seen[field] = true
		out = append(out, assignment{field: field, value: strings.TrimSpace(value)})
	}
	if len(out) == 0 {
		return nil, errors.ParseErrorf("no key=value pairs found")
	}
	return out, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
