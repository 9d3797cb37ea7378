package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scratchbook/catalog"
)

var catalogCmd = &cobra.Command{
	Use:       "catalog <elements|tears|orbits|combos>",
	Short:     "Print a classified library of names",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"elements", "tears", "orbits", "combos"},
	RunE:      runCatalog,
}

func init() {
	catalogCmd.Flags().Int("max-flare", 0, "highest flare digit (default from config)")
	catalogCmd.Flags().Int("max-transformer", 0, "highest transformer digit (default from config)")
	catalogCmd.Flags().Int("max-tear", 0, "highest tear step count (default from config)")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	lib, err := catalog.ParseLibrary(args[0])
	if err != nil {
		return err
	}

	lim := e.cfg.Catalog
	for flag, dst := range map[string]*int{
		"max-flare":       &lim.MaxFlare,
		"max-transformer": &lim.MaxTransformer,
		"max-tear":        &lim.MaxTear,
	} {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetInt(flag)
		}
	}

	rows, err := catalog.Build(spanned(cmd), e.resolver, lib, lim)
	if err != nil {
		return err
	}
	e.logger.Debug("catalog built", "library", lib, "rows", len(rows))

	return render(cmd.OutOrStdout(), e.cfg.Format, rows, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tALIASES\tELEMENTS\tCOMBOS\tSOUNDS\tF\tP\tLENGTH")
		for _, row := range rows {
			rec := row.Record
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%.4g\n",
				row.Name,
				strings.Join(row.Aliases, ", "),
				strings.Join(rec.Elements, ", "),
				strings.Join(rec.Combos, ", "),
				rec.Sounds, rec.F, rec.P, rec.Length)
		}
		return tw.Flush()
	})
}
