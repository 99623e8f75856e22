package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/di"
	"github.com/ssargent/savekit/pkg/fixvec"
	"github.com/ssargent/savekit/pkg/savefile"
)

// errListFull is what users see when a push hits a full list.
var errListFull = errors.New("list full")

// openFile decodes path and records the attempt.
func openFile(path string) (savefile.DataFile, error) {
	logger := container.GetLogger()
	start := time.Now()

	f, err := savefile.Load(path)
	if err != nil {
		container.GetMetrics().RecordDecode("unknown", false, time.Since(start))
		logger.Debug("decode failed", "path", path, "error", err)
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("unrecognized or corrupt file: %w", err)
	}

	container.GetMetrics().RecordDecode(f.Kind().String(), true, time.Since(start))
	logger.Debug("decoded", "path", path, "kind", f.Kind(), "bytes", len(f.Original()))
	return f, nil
}

// commitFile encodes f and replaces path with the result, taking a snapshot
// of the original bytes first. With --dry-run only the changed ranges are
// printed.
func commitFile(cmd *cobra.Command, path string, f savefile.DataFile) error {
	logger := container.GetLogger()

	out, err := f.Write()
	if err != nil {
		return err
	}
	ranges := savefile.Diff(f.Original(), out)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		printRanges(cmd, ranges)
		return nil
	}
	if len(ranges) == 0 {
		cmd.Printf("No changes\n")
		return nil
	}

	if container.GetConfig().Backup.Enabled {
		if err := snapshot(path, f); err != nil {
			return err
		}
	}

	if err := savefile.WriteFile(path, out); err != nil {
		return err
	}

	changed := 0
	for _, r := range ranges {
		changed += r.End - r.Start
	}
	container.GetMetrics().RecordWrite(f.Kind().String(), changed)
	logger.Info("file written", "path", path, "changed_bytes", changed)
	return nil
}

// snapshot stores the original bytes of f and prunes old snapshots.
func snapshot(path string, f savefile.DataFile) error {
	store, err := container.OpenBackups()
	if err != nil {
		return err
	}
	defer store.Close()
	return keepSnapshot(store, f.Kind(), path, f.Original())
}

// keepSnapshot puts data into an open store and prunes it down to the
// configured number of snapshots.
func keepSnapshot(store di.Snapshotter, kind savefile.Kind, path string, data []byte) error {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	id, err := store.Put(kind, snapshotName(path), data)
	if err != nil {
		return fmt.Errorf("failed to snapshot %s: %w", path, err)
	}
	container.GetMetrics().RecordSnapshot("put")
	logger.Info("snapshot taken", "id", id, "path", path)

	if cfg.Backup.Keep > 0 {
		removed, err := store.Prune(cfg.Backup.Keep)
		if err != nil {
			return err
		}
		if removed > 0 {
			container.GetMetrics().RecordSnapshot("prune")
			logger.Debug("snapshots pruned", "removed", removed)
		}
	}
	return nil
}

// snapshotName identifies a file in the snapshot store.
func snapshotName(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func printRanges(cmd *cobra.Command, ranges []savefile.Range) {
	if len(ranges) == 0 {
		cmd.Printf("No changes\n")
		return
	}
	for _, r := range ranges {
		cmd.Printf("  %s %d bytes\n", r, r.End-r.Start)
	}
}

// pushError maps a capacity error to errListFull.
func pushError(list string, err error) error {
	if errors.Is(err, fixvec.ErrCapacity) {
		container.GetMetrics().RecordCapacityFailure(list)
		return fmt.Errorf("%s: %w", list, errListFull)
	}
	return err
}

func parseUint(s string, bits int, what string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return v, nil
}

func addDryRunFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Print the byte ranges that would change without writing")
}
