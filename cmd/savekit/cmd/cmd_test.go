package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/savekit/pkg/config"
	"github.com/ssargent/savekit/pkg/savedata"
	"github.com/ssargent/savekit/pkg/savedata/sample"
	"github.com/ssargent/savekit/pkg/savefile"
)

// resetFlags puts every flag back to its default so commands can be run
// repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type testEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	_, err := config.BootstrapConfig(configPath, filepath.Join(dir, "backups"))
	require.NoError(t, err)
	return &testEnv{t: t, dir: dir, config: configPath}
}

func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append(args, "--config", e.config, "--log-level", "error"))
	err := execute()
	return buf.String(), err
}

func (e *testEnv) sample(kind, name string, seed int64) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	var data []byte
	if kind == "save" {
		data = sample.Save(seed)
	} else {
		data = sample.System(seed)
	}
	require.NoError(e.t, os.WriteFile(path, data, 0644))
	return path
}

// flagValue reads one flag straight from disk.
func flagValue(t *testing.T, path, table string, index int) uint32 {
	t.Helper()
	f, err := savefile.Load(path)
	require.NoError(t, err)
	v, ok := flagTables(f)[table].Get(index)
	require.True(t, ok)
	return v
}

// flipped returns the other value of a 1-bit flag as an argument.
func flipped(v uint32) string {
	if v == 0 {
		return "1"
	}
	return "0"
}

func TestSampleAndInspect(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "slot1.sav")

	out, err := env.run("sample", "save", path, "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote save sample")

	out, err = env.run("inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Kind:       save")
	assert.Contains(t, out, "Roster (")
	assert.Contains(t, out, "bestiary")

	sys := env.sample("system", "system.sav", 3)
	out, err = env.run("inspect", sys)
	require.NoError(t, err)
	assert.Contains(t, out, "Kind:         system")
	assert.Contains(t, out, "Achievements:")
}

func TestRoundtrip(t *testing.T) {
	env := newTestEnv(t)
	save := env.sample("save", "slot1.sav", 1)
	sys := env.sample("system", "system.sav", 1)

	out, err := env.run("roundtrip", save, sys)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "identical"))
}

func TestRoundtrip_Unrecognized(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "junk.sav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a save file"), 0644))

	_, err := env.run("roundtrip", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized or corrupt file")
}

func TestFlagSetGet(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("system", "system.sav", 2)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	want := flipped(flagValue(t, path, "achievements", 37))
	_, err = env.run("flag", "set", path, "achievements", "37", want)
	require.NoError(t, err)

	out, err := env.run("flag", "get", path, "achievements", "37")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)

	updated, err := os.ReadFile(path)
	require.NoError(t, err)
	word := savedata.OffsetAchievements + 4
	for _, r := range savefile.Diff(original, updated) {
		assert.GreaterOrEqual(t, r.Start, word)
		assert.LessOrEqual(t, r.End, word+4)
	}

	out, err = env.run("backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "system.sav")
}

func TestFlagSet_Errors(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("save", "slot1.sav", 2)

	_, err := env.run("flag", "set", path, "quests", "3", "16")
	assert.Error(t, err, "value wider than 4 bits")

	_, err = env.run("flag", "set", path, "quests", "256", "1")
	assert.Error(t, err, "index out of range")

	_, err = env.run("flag", "get", path, "achievements", "0")
	assert.Error(t, err, "save files have no achievements")
}

func TestFlagSet_DryRun(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("save", "slot1.sav", 4)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := env.run("flag", "set", path, "affinity", "2", "123456", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "affinity[2]")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, after)
}

func TestRoster_Full(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("save", "slot1.sav", 5)

	_, err := env.run("roster", "clear", path, "--no-backup")
	require.NoError(t, err)
	for i := 1; i <= savedata.RosterCap; i++ {
		_, err := env.run("roster", "push", path, "10", "--no-backup")
		require.NoError(t, err, "push %d", i)
	}

	_, err = env.run("roster", "push", path, "11", "--no-backup")
	require.Error(t, err)
	assert.ErrorIs(t, err, errListFull)

	out, err := env.run("roster", "show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "roster (8/8)")

	_, err = env.run("roster", "pop", path, "--no-backup")
	require.NoError(t, err)
	out, err = env.run("roster", "show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "roster (7/8)")
}

func TestLayout(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("layout", "system")
	require.NoError(t, err)
	assert.Contains(t, out, "path: Header.Magic")
	assert.Contains(t, out, "path: Gallery[128]")
	assert.NotContains(t, out, "Seed")

	out, err = env.run("layout", "save")
	require.NoError(t, err)
	assert.Contains(t, out, "path: Party.Roster")

	_, err = env.run("layout", "config")
	assert.Error(t, err)
}

func TestBackupRestoreLatest(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("save", "slot1.sav", 6)
	was5 := flagValue(t, path, "events", 5)
	was6 := flagValue(t, path, "events", 6)

	_, err := env.run("flag", "set", path, "events", "5", flipped(was5))
	require.NoError(t, err)
	_, err = env.run("flag", "set", path, "events", "6", flipped(was6))
	require.NoError(t, err)

	// The newest snapshot holds the state before the second edit.
	_, err = env.run("backup", "restore", "latest", path)
	require.NoError(t, err)
	assert.Equal(t, was6, flagValue(t, path, "events", 6))
	assert.NotEqual(t, was5, flagValue(t, path, "events", 5))

	_, err = env.run("backup", "prune", "--keep", "0")
	require.NoError(t, err)
	out, err := env.run("backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots")
}

func TestOrderTouch(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("system", "system.sav", 8)

	_, err := env.run("order", "touch", path, "gallery", "3", "--no-backup")
	require.NoError(t, err)

	f, err := savefile.Load(path)
	require.NoError(t, err)
	sys := f.(*savefile.SystemFile).Data
	assert.Equal(t, uint32(sys.GalleryCounter), sys.GalleryOrder().Key(3))

	_, err = env.run("order", "touch", path, "gallery", "128")
	assert.Error(t, err)
}

func TestMetricsFile(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("save", "slot1.sav", 9)
	metricsPath := filepath.Join(env.dir, "savekit.prom")

	_, err := env.run("inspect", path, "--metrics-file", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `savekit_decodes_total{kind="save",status="success"} 1`)
}

func TestMetricsFile_FailedCommands(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("save", "slot1.sav", 5)

	_, err := env.run("roster", "clear", path, "--no-backup")
	require.NoError(t, err)
	for i := 0; i < savedata.RosterCap; i++ {
		_, err := env.run("roster", "push", path, "10", "--no-backup")
		require.NoError(t, err)
	}

	full := filepath.Join(env.dir, "full.prom")
	_, err = env.run("roster", "push", path, "11", "--no-backup", "--metrics-file", full)
	require.ErrorIs(t, err, errListFull)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Contains(t, string(data), `savekit_capacity_failures_total{list="roster"} 1`)

	junk := filepath.Join(env.dir, "junk.sav")
	require.NoError(t, os.WriteFile(junk, []byte("not a save"), 0644))
	decode := filepath.Join(env.dir, "decode.prom")
	_, err = env.run("inspect", junk, "--metrics-file", decode)
	require.Error(t, err)
	data, err = os.ReadFile(decode)
	require.NoError(t, err)
	assert.Contains(t, string(data), `savekit_decodes_total{kind="unknown",status="error"} 1`)
}

func TestOrder_SkipsEmptyInventorySlots(t *testing.T) {
	env := newTestEnv(t)
	path := env.sample("save", "slot1.sav", 10)

	f, err := savefile.Load(path)
	require.NoError(t, err)
	save := f.(*savefile.SaveFile)
	stale := &save.Data.Inventory.Items[7]
	stale.ID.SetEmpty()
	stale.Stamp = 1234
	held := &save.Data.Inventory.Items[8]
	held.ID.Set(42)
	held.Stamp = 1235
	require.NoError(t, savefile.Save(path, save))

	out, err := env.run("order", "show", path, "inventory")
	require.NoError(t, err)
	assert.Contains(t, out, "id    8  key 1235")
	assert.NotContains(t, out, "id    7  key")

	_, err = env.run("order", "touch", path, "inventory", "7", "--no-backup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot 7 is empty")
}

func TestBackupRestore_Prunes(t *testing.T) {
	env := newTestEnv(t)
	cfg, err := config.LoadConfig(env.config)
	require.NoError(t, err)
	cfg.Backup.Keep = 2
	require.NoError(t, config.SaveConfig(cfg, env.config))

	path := env.sample("save", "slot1.sav", 7)
	for i := 0; i < 3; i++ {
		_, err := env.run("flag", "set", path, "events", strconv.Itoa(i), flipped(flagValue(t, path, "events", i)))
		require.NoError(t, err)
	}
	out, err := env.run("backup", "list")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "slot1.sav"))

	_, err = env.run("backup", "restore", "latest", path)
	require.NoError(t, err)
	out, err = env.run("backup", "list")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "slot1.sav"))
}

func TestConfigInitAndShow(t *testing.T) {
	env := newTestEnv(t)
	fresh := filepath.Join(env.dir, "fresh", "config.yaml")

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "init", "--config", fresh, "--backup-dir", "/srv/saves"})
	require.NoError(t, execute())
	assert.True(t, config.ConfigExists(fresh))

	cfg, err := config.LoadConfig(fresh)
	require.NoError(t, err)
	assert.Equal(t, "/srv/saves", cfg.Backup.Dir)

	_, err = env.run("config", "init")
	assert.Error(t, err, "existing config without --force")

	out, err := env.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "keep_snapshots: 20")
}

func TestMissingConfigFlag(t *testing.T) {
	resetFlags(rootCmd)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "savekit.prom")
	rootCmd.SetArgs([]string{"layout", "save", "--config", filepath.Join(dir, "nope.yaml"), "--metrics-file", metricsPath})
	err := execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
	assert.NoFileExists(t, metricsPath)
}
