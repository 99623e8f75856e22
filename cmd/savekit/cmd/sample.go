package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/savedata/sample"
	"github.com/ssargent/savekit/pkg/savefile"
)

// sampleCmd represents the sample command
var sampleCmd = &cobra.Command{
	Use:   "sample <save|system> <file>",
	Short: "Write a synthetic file for testing",
	Long: `Write a synthetic file of the given kind. The content is random apart
from the values a decoder checks, so it exercises every code path without
needing real game data.

Example:
  savekit sample save /tmp/slot1.sav --seed 7`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := savefile.ParseKind(args[0])
		if err != nil {
			return err
		}
		seed, _ := cmd.Flags().GetInt64("seed")

		var data []byte
		switch kind {
		case savefile.KindSave:
			data = sample.Save(seed)
		case savefile.KindSystem:
			data = sample.System(seed)
		default:
			return fmt.Errorf("no sample for %s", kind)
		}

		if err := savefile.WriteFile(args[1], data); err != nil {
			return err
		}
		cmd.Printf("Wrote %s sample (%d bytes) to %s\n", kind, len(data), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().Int64("seed", 1, "Seed for the random content")
}
