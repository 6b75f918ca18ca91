// Copyright 2026 CleverData
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cleverdata/asset-sync/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultEndpoint = "http://localhost:8787"

var cfgFile string
var Version = "0.1.0" // Default version

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "assetsync",
	Short:   "Game metadata asset synchronizer",
	Version: Version,
	Long: `assetsync uploads the local images referenced by game metadata records
to the asset CDN and rewrites the records to point at the CDN URLs.

The API key is read from the ASSET_API_KEY environment variable.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./assetsync.yaml or $HOME/.assetsync/assetsync.yaml)")
	pf.String("games-dir", "games", "Root directory of the metadata store")
	pf.String("assets-root", ".", "Directory relative image references are resolved against")
	pf.String("api-url", defaultEndpoint, "Asset API base URL")
	pf.String("db-path", "", "Upload history database (default: <user config dir>/assetsync/history.db)")
	pf.String("game", "", "Only process this game")
	pf.Bool("dry-run", false, "Resolve everything but upload and write nothing")
	pf.Bool("debug", false, "Verbose logging")

	for key, flag := range map[string]string{
		"games_dir":   "games-dir",
		"assets_root": "assets-root",
		"api_url":     "api-url",
		"db_path":     "db-path",
		"game":        "game",
		"dry_run":     "dry-run",
		"debug":       "debug",
	} {
		viper.BindPFlag(key, pf.Lookup(flag))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".assetsync"))
		}
		viper.SetConfigName("assetsync")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("settling_delay", "2s")
	viper.SetDefault("polling_interval", "1m")

	viper.SetEnvPrefix("ASSETSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("api_key", "ASSET_API_KEY", "ASSETSYNC_API_KEY")

	if err := viper.ReadInConfig(); err == nil {
		// Lock it in so the service is installed against the same file
		viper.SetConfigFile(viper.ConfigFileUsed())
	}
}

func loadConfig() (config.RunConfig, error) {
	var cfg config.RunConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.DBPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.DBPath = filepath.Join(dir, "assetsync", "history.db")
	}
	return cfg, nil
}
