package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

var (
	ErrMissingAPIKey   = errors.New("api key not provided: set ASSET_API_KEY or use --dry-run")
	ErrMissingGamesDir = errors.New("games directory not found")
)

type RunConfig struct {
	GamesDir        string `mapstructure:"games_dir"`
	AssetsRoot      string `mapstructure:"assets_root"` // Base for relative image references
	Endpoint        string `mapstructure:"api_url"`     // Upload service base URL
	APIKey          string `mapstructure:"api_key"`     // Sent on every upload
	DryRun          bool   `mapstructure:"dry_run"`     // No uploads, no writes
	Game            string `mapstructure:"game"`        // Optional single-game filter
	DBPath          string `mapstructure:"db_path"`     // Upload journal location
	Debug           bool   `mapstructure:"debug"`
	SettlingDelay   string `mapstructure:"settling_delay"`   // Quiet period before a changed record is re-synced
	PollingInterval string `mapstructure:"polling_interval"` // Backup scan frequency in watch mode
	DisableFsnotify bool   `mapstructure:"disable_fsnotify"` // Watch mode polls only
}

// Validate checks the configuration once, before any record is touched.
func (c RunConfig) Validate(fs afero.Fs) error {
	if !c.DryRun && c.APIKey == "" {
		return ErrMissingAPIKey
	}
	info, err := fs.Stat(c.GamesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingGamesDir, c.GamesDir)
		}
		return fmt.Errorf("failed to stat games directory %s: %w", c.GamesDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMissingGamesDir, c.GamesDir)
	}
	return nil
}
