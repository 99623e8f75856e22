package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/savefile"
)

// roundtripCmd represents the roundtrip command
var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <file>...",
	Short: "Check that files re-encode byte for byte",
	Long: `Decode each file and encode it again without changes. Any byte that
differs from the original is reported as a range.

Example:
  savekit roundtrip slot1.sav slot2.sav system.sav`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			f, err := openFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out, err := f.Write()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			ranges := savefile.Diff(f.Original(), out)
			if len(ranges) == 0 {
				cmd.Printf("%s: identical (%s, %d bytes)\n", path, f.Kind(), len(out))
				continue
			}
			failed++
			cmd.Printf("%s: %d differing ranges\n", path, len(ranges))
			printRanges(cmd, ranges)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files did not round trip", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
}
