package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/savefile"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage file snapshots",
	Long: `Every command that writes a file first stores the original bytes as a
snapshot. These commands list, restore and prune them.`,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := container.OpenBackups()
		if err != nil {
			return err
		}
		defer store.Close()

		snaps, err := store.List()
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			cmd.Printf("No snapshots\n")
			return nil
		}
		for _, s := range snaps {
			cmd.Printf("%s  %s  %-6s  %6d  %s\n",
				s.ID, s.Time.Local().Format(time.DateTime), s.Kind, s.Size, s.Name)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <id|latest> [file]",
	Short: "Write a snapshot back to disk",
	Long: `Write a snapshot back to disk. Without a file argument the snapshot is
restored to the path it was taken from. The file being replaced is itself
snapshotted first.

Examples:
  savekit backup restore 2aQ3dJ0ePFZ0pS8m9SuQ9yKpN3K
  savekit backup restore latest slot1.sav`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := container.GetLogger()
		store, err := container.OpenBackups()
		if err != nil {
			return err
		}
		defer store.Close()

		var id ksuid.KSUID
		if args[0] == "latest" {
			if len(args) < 2 {
				return fmt.Errorf("restore latest needs a file")
			}
			snap, err := store.Latest(snapshotName(args[1]))
			if err != nil {
				return err
			}
			id = snap.ID
		} else if id, err = ksuid.Parse(args[0]); err != nil {
			return fmt.Errorf("invalid snapshot id %q: %w", args[0], err)
		}

		snap, data, err := store.Get(id)
		if err != nil {
			return err
		}
		target := snap.Name
		if len(args) == 2 {
			target = args[1]
		}

		// Keep what is about to be replaced.
		if current, err := os.ReadFile(target); err == nil {
			kind := snap.Kind
			if f, err := savefile.FromBytes(current); err == nil {
				kind = f.Kind()
			}
			if err := keepSnapshot(store, kind, target, current); err != nil {
				return err
			}
		}

		if err := savefile.WriteFile(target, data); err != nil {
			return err
		}
		container.GetMetrics().RecordSnapshot("restore")
		logger.Info("snapshot restored", "id", id, "path", target)
		cmd.Printf("Restored %s to %s (%d bytes)\n", id, target, len(data))
		return nil
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keep := container.GetConfig().Backup.Keep
		if cmd.Flags().Changed("keep") {
			keep, _ = cmd.Flags().GetInt("keep")
		}

		store, err := container.OpenBackups()
		if err != nil {
			return err
		}
		defer store.Close()

		removed, err := store.Prune(keep)
		if err != nil {
			return err
		}
		container.GetMetrics().RecordSnapshot("prune")
		cmd.Printf("Removed %d snapshots\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd, backupRestoreCmd, backupPruneCmd)
	backupPruneCmd.Flags().Int("keep", 0, "Number of snapshots to keep (default from config)")
}
