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
	"io"
	"log"
	"os"
	"time"

	"github.com/cleverdata/asset-sync/internal/core"
	"github.com/cleverdata/asset-sync/internal/logging"
	"github.com/kardianos/service"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runWatch does a full sync and then keeps re-syncing changed records until
// ctx is cancelled. The whole watch session shares one upload cache.
func runWatch(ctx context.Context, logger core.Logger, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := newSession(cfg, afero.NewOsFs(), logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.run(ctx, out); err != nil {
		return err
	}

	games, err := s.store.Games(cfg.Game)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		logger.Info("Nothing to watch.")
		return nil
	}

	settling, err := time.ParseDuration(cfg.SettlingDelay)
	if err != nil {
		settling = 2 * time.Second
	}
	polling, err := time.ParseDuration(cfg.PollingInterval)
	if err != nil {
		polling = time.Minute
	}

	logger.Infof("Watching %d game(s) in %s", len(games), cfg.GamesDir)
	return s.sync.Watch(ctx, games, core.WatchOptions{
		SettlingDelay:   settling,
		PollingInterval: polling,
		DisableFsnotify: cfg.DisableFsnotify,
	})
}

// program implements the service.Interface
type program struct {
	cancel context.CancelFunc
	done   chan struct{}
	logger service.Logger
}

func (p *program) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		if err := runWatch(ctx, p.logger, io.Discard); err != nil {
			p.logger.Errorf("Watch stopped: %v", err)
		}
	}()
	return nil
}

func (p *program) Stop(s service.Service) error {
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
	return nil
}

func getService(configPath string) (service.Service, *program, error) {
	args := []string{"watch"}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}

	svcConfig := &service.Config{
		Name:        "AssetSync",
		DisplayName: "Asset Sync Watcher",
		Description: "Uploads images referenced by game metadata records and rewrites them to CDN URLs.",
		Arguments:   args,
	}

	prg := &program{}
	s, err := service.New(prg, svcConfig)
	if err != nil {
		return nil, nil, err
	}
	return s, prg, nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync, then keep records in sync as they change",
	Long: `Runs a full sync, then watches every characters/ and stages/ folder and
re-syncs a record once it has stopped changing for the settling delay.
A periodic scan backs up the filesystem events.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if service.Interactive() {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), logging.New(os.Stderr, cfg.Debug), cmd.OutOrStdout())
		}

		// When running as a service, we MUST call s.Run() to check in with the service manager
		s, prg, err := getService(viper.ConfigFileUsed())
		if err != nil {
			log.Fatalf("Failed to initialize service: %v", err)
		}
		prg.logger, err = s.Logger(nil)
		if err != nil {
			return fmt.Errorf("failed to open service logger: %w", err)
		}
		return s.Run()
	},
}

func init() {
	watchCmd.Flags().String("settling-delay", "2s", "Quiet period before a changed record is re-synced")
	watchCmd.Flags().String("polling-interval", "1m", "Interval for the backup scan")
	watchCmd.Flags().Bool("no-fsnotify", false, "Disable real-time filesystem events (rely purely on polling)")
	viper.BindPFlag("settling_delay", watchCmd.Flags().Lookup("settling-delay"))
	viper.BindPFlag("polling_interval", watchCmd.Flags().Lookup("polling-interval"))
	viper.BindPFlag("disable_fsnotify", watchCmd.Flags().Lookup("no-fsnotify"))
	rootCmd.AddCommand(watchCmd)
}
