package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scratchbook/codebook"
)

// ErrLintFailed is returned when lint finds problems.
var ErrLintFailed = errors.New("codebook lint failed")

var lintCmd = &cobra.Command{
	Use:   "lint [codebook]",
	Short: "Check a codebook for missing, cyclic and shadowed definitions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

// lintResult is the structured form of a lint run.
type lintResult struct {
	Source  string           `json:"source" yaml:"source"`
	Version string           `json:"version" yaml:"version"`
	Entries int              `json:"entries" yaml:"entries"`
	Report  *codebook.Report `json:"report" yaml:"report"`
}

func runLint(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	path := e.cfg.Codebook
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no codebook: pass a path or set --codebook")
	}

	start := time.Now()
	cb, err := codebook.LoadFile(path)
	if err != nil {
		return err
	}
	report, err := codebook.Lint(cb)
	if err != nil {
		return err
	}
	res := lintResult{Source: path, Version: cb.Version(), Entries: cb.Len(), Report: report}
	e.logger.Debug("lint finished", "path", path, "findings", len(report.Findings), "elapsed", time.Since(start))

	err = render(cmd.OutOrStdout(), e.cfg.Format, res, func(w io.Writer) error {
		return writeLintReport(w, res, time.Since(start))
	})
	if err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("%w: %d finding(s)", ErrLintFailed, len(report.Findings))
	}
	return nil
}

func writeLintReport(w io.Writer, res lintResult, elapsed time.Duration) error {
	report := res.Report
	var sb strings.Builder
	fmt.Fprintf(&sb, "scratchbook lint\n")
	fmt.Fprintf(&sb, "════════════════════════════════════════════\n\n")
	fmt.Fprintf(&sb, "Codebook:    %s\n", res.Source)
	fmt.Fprintf(&sb, "Version:     %s\n", res.Version)
	fmt.Fprintf(&sb, "Entries:     %d\n\n", res.Entries)

	byKind := map[codebook.FindingKind][]codebook.Finding{}
	for _, f := range report.Findings {
		byKind[f.Kind] = append(byKind[f.Kind], f)
	}
	for _, kind := range []codebook.FindingKind{codebook.Invalid, codebook.Missing, codebook.Cyclic, codebook.Shadowed} {
		found := byKind[kind]
		if len(found) == 0 {
			fmt.Fprintf(&sb, "  %-10s PASS\n", kind)
			continue
		}
		fmt.Fprintf(&sb, "  %-10s FAIL  (%d)\n", kind, len(found))
		for _, f := range found {
			fmt.Fprintf(&sb, "    %s: %s\n", f.Name, f.Detail)
		}
	}
	fmt.Fprintln(&sb)

	fmt.Fprintf(&sb, "════════════════════════════════════════════\n")
	if report.OK() {
		fmt.Fprintf(&sb, "Definitions:  CONSISTENT\n")
		fmt.Fprintf(&sb, "Order:        %s\n", strings.Join(report.Order, " → "))
	} else {
		fmt.Fprintf(&sb, "Definitions:  NOT CONSISTENT\n")
	}
	fmt.Fprintf(&sb, "Checked in:   %v\n", elapsed.Round(time.Microsecond))
	_, err := io.WriteString(w, sb.String())
	return err
}
