/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/config"
	"github.com/ssargent/savekit/pkg/di"
)

var (
	container *di.Container
	profiler  interface{ Stop() }
	// ready is set once PersistentPreRunE has built the container.
	ready bool
)

// annotationNoConfig marks commands that run before a config file exists.
const annotationNoConfig = "savekit/no-config"

// SetContainer sets the dependency container used by the commands
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "savekit",
	Short: "savekit - inspect and edit game save files",
	Long: `savekit decodes the game's save and system files, edits individual
values and writes them back byte for byte, leaving everything it does not
understand untouched. Files are snapshotted before they are overwritten.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		level, err := config.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		SetContainer(di.NewContainer(cfg, logger))
		ready = true

		if cfg.ProfileDir != "" {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.ProfileDir),
				profile.NoShutdownHook, profile.Quiet)
			logger.Debug("cpu profiling enabled", "dir", cfg.ProfileDir)
		}
		return nil
	},
}

// loadConfig reads the config file and applies flag overrides. A missing
// file at the default location is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg := config.DefaultConfig()
	if config.ConfigExists(path) {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if flags.Changed("config") && cmd.Annotations[annotationNoConfig] == "" {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("backup-dir") {
		cfg.Backup.Dir, _ = flags.GetString("backup-dir")
	}
	if noBackup, _ := flags.GetBool("no-backup"); noBackup {
		cfg.Backup.Enabled = false
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Changed("profile") {
		cfg.ProfileDir, _ = flags.GetString("profile")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command, then stops the profiler and writes the
// metrics file whether or not the command failed.
func execute() error {
	ready = false
	err := rootCmd.Execute()
	if ferr := finish(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func finish() error {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
	if !ready {
		return nil
	}
	ready = false
	if path := container.GetConfig().MetricsFile; path != "" {
		if err := container.GetMetrics().WriteTextfile(path); err != nil {
			return err
		}
		container.GetLogger().Debug("metrics written", "path", path)
	}
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.GetDefaultConfigPath(), "Path to the config file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("backup-dir", "", "Directory for the snapshot store")
	flags.Bool("no-backup", false, "Do not snapshot files before overwriting them")
	flags.String("metrics-file", "", "Write prometheus metrics to this file on exit")
	flags.String("profile", "", "Write a CPU profile to this directory")
}
