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

	"github.com/cleverdata/asset-sync/internal/generate"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	iconDir   string
	outputDir string
	refPrefix string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate metadata records from asset folders",
}

var generateStagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Create one stage record per Smash Ultimate stage icon",
	Long: `Reads stage_2_<Internal>.png icons, looks up each stage's display name and
writes <slug>.json with a single variant whose thumbnail points at the icon.`,
	Example: `  assetsync generate stages --icons ../StreamHelperAssets/games/ssbu/stage_icon --out games/super-smash-bros-ultimate/stages`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if iconDir == "" || outputDir == "" {
			return fmt.Errorf("--icons and --out are required")
		}

		generated, err := generate.Stages(afero.NewOsFs(), generate.Options{
			IconDir:   iconDir,
			OutputDir: outputDir,
			RefPrefix: refPrefix,
			Names:     generate.UltimateStages,
		})
		for _, g := range generated {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", g.File)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nGenerated %d stage files\n", len(generated))
		return nil
	},
}

func init() {
	generateStagesCmd.Flags().StringVar(&iconDir, "icons", "", "Directory containing stage_2_*.png icons")
	generateStagesCmd.Flags().StringVar(&outputDir, "out", "", "Directory to write stage records to")
	generateStagesCmd.Flags().StringVar(&refPrefix, "prefix", generate.DefaultRefPrefix, "Reference prefix written in front of each icon file name")
	generateCmd.AddCommand(generateStagesCmd)
	rootCmd.AddCommand(generateCmd)
}
