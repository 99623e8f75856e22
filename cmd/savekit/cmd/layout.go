package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/savekit/pkg/layout"
	"github.com/ssargent/savekit/pkg/savedata"
	"github.com/ssargent/savekit/pkg/savefile"
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout <save|system>",
	Short: "Print the field table of a file kind as YAML",
	Long: `Print every documented field of a file kind with its absolute offset
and size. Arrays are listed once with their element count.

Example:
  savekit layout system`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"save", "system"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := savefile.ParseKind(args[0])
		if err != nil {
			return err
		}

		var tree layout.Struct = &savedata.Save{}
		if kind == savefile.KindSystem {
			tree = &savedata.System{}
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(layout.Describe(tree)); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}
