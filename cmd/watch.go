package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scratchbook/codebook"
)

var watchCmd = &cobra.Command{
	Use:   "watch [formula]",
	Short: "Reload the codebook on change, re-linting and re-resolving",
	Long: `Watch keeps the codebook in memory and reloads it whenever the file changes.
Each reload is linted, and the optional formula is resolved again against the
fresh definitions.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if e.cfg.Codebook == "" {
		return fmt.Errorf("no codebook: set --codebook")
	}

	w, err := codebook.NewWatcher(e.cfg.Codebook, e.cfg.WatchDebounce)
	if err != nil {
		return fmt.Errorf("watch codebook: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch codebook: %w", err)
	}
	defer w.Stop()

	e.logger.Info("watching codebook", "path", w.Path, "debounce", w.Debounce)
	report := func() {
		if len(args) == 0 {
			return
		}
		s, err := resolveArgs(cmd, e, args)
		if err != nil {
			e.logger.Error("resolve failed", "error", err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d elements, length %.4g\n", s.Len(), s.Length())
	}
	report()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-w.Updates:
			if !ok {
				return nil
			}
			if u.Err != nil {
				e.logger.Error("codebook reload failed", "error", u.Err)
				continue
			}
			e.resolver.SetCodebook(u.Codebook)
			lint, err := codebook.Lint(u.Codebook)
			if err != nil {
				e.logger.Error("lint failed", "error", err)
				continue
			}
			for _, f := range lint.Findings {
				e.logger.Warn("codebook finding", "name", f.Name, "kind", f.Kind, "detail", f.Detail)
			}
			report()
		}
	}
}
