package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/bitflags"
	"github.com/ssargent/savekit/pkg/savefile"
)

// flagTables lists the flag tables of each file kind by name.
func flagTables(f savefile.DataFile) map[string]*bitflags.Table {
	switch f := f.(type) {
	case *savefile.SaveFile:
		p := &f.Data.Progress
		return map[string]*bitflags.Table{
			"events":    p.EventFlags(),
			"quests":    p.QuestFlags(),
			"treasures": p.TreasureFlags(),
			"bestiary":  p.BestiaryFlags(),
			"affinity":  p.AffinityFlags(),
		}
	case *savefile.SystemFile:
		return map[string]*bitflags.Table{
			"achievements": f.Data.AchievementFlags(),
			"music":        f.Data.MusicFlags(),
		}
	}
	return nil
}

func lookupTable(f savefile.DataFile, name string) (*bitflags.Table, error) {
	tables := flagTables(f)
	if t, ok := tables[name]; ok {
		return t, nil
	}
	names := make([]string, 0, len(tables))
	for n := range tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("no flag table %q in a %s file (have %v)", name, f.Kind(), names)
}

func parseIndex(t *bitflags.Table, s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	if i < 0 || i >= t.Len() {
		return 0, fmt.Errorf("index %d out of range [0, %d)", i, t.Len())
	}
	return i, nil
}

// flagCmd represents the flag command
var flagCmd = &cobra.Command{
	Use:   "flag",
	Short: "Read and write packed flag tables",
	Long: `Read and write entries of the packed flag tables.

Save files have the tables events, quests, treasures, bestiary and affinity.
System files have achievements and music.`,
}

var flagGetCmd = &cobra.Command{
	Use:   "get <file> <table> <index>",
	Short: "Print one flag",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openFile(args[0])
		if err != nil {
			return err
		}
		t, err := lookupTable(f, args[1])
		if err != nil {
			return err
		}
		i, err := parseIndex(t, args[2])
		if err != nil {
			return err
		}
		v, _ := t.Get(i)
		cmd.Printf("%d\n", v)
		return nil
	},
}

var flagSetCmd = &cobra.Command{
	Use:   "set <file> <table> <index> <value>",
	Short: "Change one flag and write the file",
	Long: `Change one flag and write the file. Only the 32-bit word holding the
flag changes on disk.

Example:
  savekit flag set system.sav achievements 12 1`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openFile(args[0])
		if err != nil {
			return err
		}
		t, err := lookupTable(f, args[1])
		if err != nil {
			return err
		}
		i, err := parseIndex(t, args[2])
		if err != nil {
			return err
		}
		v, err := parseUint(args[3], t.Bits(), "value")
		if err != nil {
			return err
		}

		old, _ := t.Get(i)
		t.Set(i, uint32(v))
		cmd.Printf("%s[%d]: %d -> %d\n", args[1], i, old, v)
		return commitFile(cmd, args[0], f)
	},
}

var flagListCmd = &cobra.Command{
	Use:   "list <file> <table>",
	Short: "Print every non-zero flag of a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openFile(args[0])
		if err != nil {
			return err
		}
		t, err := lookupTable(f, args[1])
		if err != nil {
			return err
		}
		t.Each(func(i int, v uint32) {
			if v != 0 {
				cmd.Printf("%4d  %d\n", i, v)
			}
		})
		cmd.Printf("%d of %d set (%d-bit)\n", t.Count(), t.Len(), t.Bits())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flagCmd)
	flagCmd.AddCommand(flagGetCmd, flagSetCmd, flagListCmd)
	addDryRunFlag(flagSetCmd)
}
