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
	"fmt"

	"github.com/cleverdata/asset-sync/internal/db"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	resetPath    string
)

func openJournal() (*db.Journal, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return db.Open(cfg.DBPath)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past uploads",
	Long:  `Lists the uploads recorded in the local history database. The history is informational only; it does not stop files from being uploaded again.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		journal, err := openJournal()
		if err != nil {
			return err
		}
		defer journal.Close()

		entries, err := journal.List(historyLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No uploads recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-16s %-9s %-50s %s\n", "WHEN", "SIZE", "FILE", "URL")
		fmt.Fprintln(out, "--------------------------------------------------------------------------------")
		for _, e := range entries {
			fmt.Fprintf(out, "%-16s %-9s %-50s %s\n", humanize.Time(e.UploadedAt), humanize.Bytes(uint64(e.Size)), e.LocalPath, e.RemoteURL)
		}
		return nil
	},
}

var historyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the upload history database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		journal, err := openJournal()
		if err != nil {
			return err
		}
		defer journal.Close()

		if resetPath != "" {
			fmt.Printf("Clearing history for: %s\n", resetPath)
		} else {
			fmt.Println("Clearing ENTIRE upload history.")
		}
		n, err := journal.Reset(resetPath)
		if err != nil {
			return err
		}
		fmt.Printf("History reset successfully (%d entries removed).\n", n)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of entries to show (0 for all)")
	historyResetCmd.Flags().StringVarP(&resetPath, "path", "p", "", "Specific file path to clear from history")
	historyCmd.AddCommand(historyResetCmd)
	rootCmd.AddCommand(historyCmd)
}
