// Package di provides dependency injection container
package di

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/savekit/pkg/backup"
	"github.com/ssargent/savekit/pkg/config"
	"github.com/ssargent/savekit/pkg/metrics"
	"github.com/ssargent/savekit/pkg/savefile"
)

// Snapshotter is the part of the snapshot store the commands use
type Snapshotter interface {
	Put(kind savefile.Kind, name string, data []byte) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) (backup.Snapshot, []byte, error)
	List() ([]backup.Snapshot, error)
	Latest(name string) (backup.Snapshot, error)
	Prune(keep int) (int, error)
	Close() error
}

// BackupFactory opens a snapshot store
type BackupFactory func(dir string, opts backup.Options) (Snapshotter, error)

// DefaultBackupFactory opens a pebble backed store
func DefaultBackupFactory(dir string, opts backup.Options) (Snapshotter, error) {
	store, err := backup.Open(dir, opts)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Container holds all the dependencies for the application
type Container struct {
	config        *config.Config
	logger        *slog.Logger
	metrics       *metrics.Metrics
	backupFactory BackupFactory
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) *Container {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Container{
		config:        cfg,
		logger:        logger,
		metrics:       metrics.New(),
		backupFactory: DefaultBackupFactory,
	}
}

// GetConfig returns the effective configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the command logger
func (c *Container) GetLogger() *slog.Logger {
	return c.logger
}

// GetMetrics returns the metrics for this run
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// OpenBackups opens the configured snapshot store. The caller closes it.
func (c *Container) OpenBackups() (Snapshotter, error) {
	if !c.config.Backup.Enabled {
		return nil, fmt.Errorf("backups are disabled")
	}
	return c.backupFactory(c.config.Backup.Dir, backup.Options{Compress: c.config.Backup.Compress})
}

// SetBackupFactory allows overriding the snapshot store (for testing)
func (c *Container) SetBackupFactory(factory BackupFactory) {
	c.backupFactory = factory
}
