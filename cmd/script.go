package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scratchbook/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script <file.star>",
	Short: "Run a Starlark script with resolve, classify, names and define builtins",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	_, err = script.Run(spanned(cmd), e.resolver, args[0], src, cmd.OutOrStdout())
	return err
}
