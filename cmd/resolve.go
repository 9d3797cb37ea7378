package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scratchbook/classify"
	"github.com/blackwell-systems/scratchbook/resolve"
	"github.com/blackwell-systems/scratchbook/scratch"
	"github.com/blackwell-systems/scratchbook/script"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <formula>",
	Short: "Resolve a formula into its elements",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <formula>",
	Short: "Name the elements and combos of a formula",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

var namesCmd = &cobra.Command{
	Use:   "names <formula>",
	Short: "List the names a formula uses and how each resolves",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNames,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(namesCmd)
}

// resolveArgs joins the arguments into one formula, checks it and resolves
// it within the configured length limit.
func resolveArgs(cmd *cobra.Command, e *env, args []string) (scratch.Scratch, error) {
	formula, err := resolve.Check(strings.Join(args, " "))
	if err != nil {
		return scratch.Scratch{}, err
	}
	s, err := e.resolver.Resolve(spanned(cmd), formula)
	if err != nil {
		return scratch.Scratch{}, err
	}
	if err := resolve.CheckLength(s, e.cfg.MaxLength); err != nil {
		return scratch.Scratch{}, err
	}
	return s, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	s, err := resolveArgs(cmd, e, args)
	if err != nil {
		return err
	}
	v := script.View(s)
	return render(cmd.OutOrStdout(), e.cfg.Format, v, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tNAME\tCURVE\tCLICKS\tLENGTH\tHEIGHT\tLIFT\tFLIP")
		for i, el := range v.Elements {
			clicks := make([]string, len(el.Clicks))
			for j, c := range el.Clicks {
				clicks[j] = c.String()
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t[%s]\t%.4g\t%.4g\t%.4g\t%s\n",
				i, el.Name, el.Curve, strings.Join(clicks, " "), el.Length, el.Height, el.Lift, flips(el))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\nLength: %.4g  Height: %.4g  Lift: %.4g\n", v.Length, v.Height, v.Lift)
		return err
	})
}

func flips(el script.Element) string {
	switch {
	case el.XFlip && el.YFlip:
		return "xy"
	case el.XFlip:
		return "x"
	case el.YFlip:
		return "y"
	}
	return "-"
}

func runClassify(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	s, err := resolveArgs(cmd, e, args)
	if err != nil {
		return err
	}
	rec := classify.Classify(s)
	return render(cmd.OutOrStdout(), e.cfg.Format, rec, func(w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"Elements:    %s\nCombos:      %s\nSequence:    %s\nSounds:      %d\nF:           %d  (open %d, close %d)\nP:           %d  (open %d, close %d)\nVariations:  %t\nLength:      %.4g\n",
			strings.Join(rec.Elements, ", "),
			strings.Join(rec.Combos, ", "),
			strings.Join(rec.Sequence, " "),
			rec.Sounds,
			rec.F, rec.FO, rec.FC,
			rec.P, rec.PO, rec.PC,
			rec.Variations,
			rec.Length,
		)
		return err
	})
}

func runNames(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	formula, err := resolve.Check(strings.Join(args, " "))
	if err != nil {
		return err
	}
	var defs []resolve.Definition
	for _, name := range resolve.Names(formula) {
		def, err := e.resolver.Define(name)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}
	return render(cmd.OutOrStdout(), e.cfg.Format, defs, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tFORMULA")
		for _, def := range defs {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Name, def.Kind, def.Formula)
		}
		return tw.Flush()
	})
}
