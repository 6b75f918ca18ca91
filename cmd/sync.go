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
	"os"

	"github.com/cleverdata/asset-sync/internal/api"
	"github.com/cleverdata/asset-sync/internal/config"
	"github.com/cleverdata/asset-sync/internal/core"
	"github.com/cleverdata/asset-sync/internal/db"
	"github.com/cleverdata/asset-sync/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// session is everything one run needs. Its cache lives exactly as long as
// the session.
type session struct {
	cfg     config.RunConfig
	store   *core.Store
	sync    *core.Synchronizer
	journal *db.Journal
	logger  core.Logger
}

// newSession validates cfg and wires a synchronizer for one run. In dry-run
// mode nothing that could write is opened.
func newSession(cfg config.RunConfig, fs afero.Fs, logger core.Logger) (*session, error) {
	if err := cfg.Validate(fs); err != nil {
		return nil, err
	}
	core.DebugMode = cfg.Debug

	s := &session{cfg: cfg}
	var opts []core.ResolverOption
	if cfg.DryRun {
		opts = append(opts, core.WithSimulation(cfg.Endpoint))
	} else {
		journal, err := db.Open(cfg.DBPath)
		if err != nil {
			logger.Warningf("Upload history disabled: %v", err)
		} else {
			s.journal = journal
			opts = append(opts, core.WithRecorder(journal))
			// Tag every line of this run with the id its uploads are journaled under.
			if l, ok := logger.(*logging.Logger); ok {
				logger = l.WithField("run", journal.RunID())
			}
		}
	}
	s.logger = logger
	opts = append(opts, core.WithLogger(logger))

	client := api.NewClient(cfg.Endpoint, cfg.APIKey)
	resolver := core.NewResolver(fs, cfg.AssetsRoot, client, core.NewCache(), opts...)
	s.store = core.NewStore(fs, cfg.GamesDir)
	s.sync = core.NewSynchronizer(s.store, resolver, logger)
	return s, nil
}

func (s *session) Close() {
	if s.journal != nil {
		s.journal.Close()
	}
}

// run performs one full pass and prints its summary.
func (s *session) run(ctx context.Context, out io.Writer) (core.Summary, error) {
	if s.cfg.DryRun {
		fmt.Fprintln(out, "Dry run mode - nothing will be uploaded or written")
	}
	summary, err := s.sync.Run(ctx, s.cfg.Game)
	if err != nil {
		return summary, fmt.Errorf("sync aborted: %w", err)
	}
	printSummary(out, summary, s.cfg)
	return summary, nil
}

func printSummary(out io.Writer, sum core.Summary, cfg config.RunConfig) {
	if sum.Games == 0 {
		if cfg.Game != "" {
			fmt.Fprintf(out, "No game named %q in %s\n", cfg.Game, cfg.GamesDir)
		} else {
			fmt.Fprintf(out, "No games found in %s\n", cfg.GamesDir)
		}
		return
	}

	updated := "Updated:"
	uploaded := "Uploaded:"
	if cfg.DryRun {
		fmt.Fprintf(out, "\nDry run complete:\n")
		updated = "Would update:"
		uploaded = "Would upload:"
	} else {
		fmt.Fprintf(out, "\nSync complete:\n")
	}
	fmt.Fprintf(out, "  %-14s %d\n", "Games:", sum.Games)
	fmt.Fprintf(out, "  %-14s %d\n", "Records:", sum.Records)
	fmt.Fprintf(out, "  %-14s %d\n", updated, sum.Updated)
	fmt.Fprintf(out, "  %-14s %d\n", uploaded, sum.Uploaded)
	fmt.Fprintf(out, "  %-14s %d\n", "Cached:", sum.Cached)
	fmt.Fprintf(out, "  %-14s %d\n", "Missing:", sum.Missing)
	fmt.Fprintf(out, "  %-14s %d\n", "Failed:", sum.Failed)
	if sum.Invalid > 0 {
		fmt.Fprintf(out, "  %-14s %d\n", "Invalid:", sum.Invalid)
	}
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload referenced images and rewrite records to CDN URLs",
	Long: `Walks every game in the metadata store, uploads each local image a record
references (once per file), and rewrites the record to use the returned URL.

Missing image files are reported and left as they are. A record whose upload
fails is left untouched and the run moves on to the next record.`,
	Example: `  ASSET_API_KEY=... assetsync sync --games-dir games --api-url https://assets.example.com
  assetsync sync --dry-run --game super-smash-bros-ultimate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.New(os.Stderr, cfg.Debug)

		s, err := newSession(cfg, afero.NewOsFs(), logger)
		if err != nil {
			return err
		}
		defer s.Close()

		_, err = s.run(cmd.Context(), cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
