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

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the watcher as a system service",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and start the watcher service",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The service runs without our environment, so it needs a config file
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no config file found; create assetsync.yaml (including api_key) or pass --config")
		}

		s, _, err := getService(configPath)
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}

		if status, err := s.Status(); err == nil {
			fmt.Printf("AssetSync service is already installed (%s).\n", statusString(status))
			fmt.Println("Use 'assetsync service restart' to apply config changes, or 'assetsync service uninstall' to remove it.")
			return nil
		}

		fmt.Println("Installing AssetSync service...")
		if err := s.Install(); err != nil {
			return fmt.Errorf("failed to install (are you running with administrator rights?): %w", err)
		}
		fmt.Println("Service installed successfully.")

		fmt.Println("Starting service...")
		if err := s.Start(); err != nil {
			return fmt.Errorf("failed to start: %w", err)
		}
		fmt.Println("Service started.")
		return nil
	},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the watcher service status",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := getService("")
		if err != nil {
			return err
		}
		status, err := s.Status()
		if err != nil {
			return fmt.Errorf("could not get status: %w", err)
		}
		fmt.Printf("AssetSync Service Status: %s\n", statusString(status))
		return nil
	},
}

// controlCmd builds a subcommand that applies one service.Control action.
func controlCmd(action, short, doing, done string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := getService("")
			if err != nil {
				return err
			}
			fmt.Println(doing)
			if err := service.Control(s, action); err != nil {
				return fmt.Errorf("failed to %s: %w", action, err)
			}
			fmt.Println(done)
			return nil
		},
	}
}

func statusString(status service.Status) string {
	switch status {
	case service.StatusRunning:
		return "Running"
	case service.StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

func init() {
	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceStatusCmd)
	serviceCmd.AddCommand(controlCmd("uninstall", "Remove the watcher service", "Uninstalling AssetSync service...", "Service uninstalled."))
	serviceCmd.AddCommand(controlCmd("start", "Start the watcher service", "Starting AssetSync service...", "Service started."))
	serviceCmd.AddCommand(controlCmd("stop", "Stop the watcher service", "Stopping AssetSync service...", "Service stopped."))
	serviceCmd.AddCommand(controlCmd("restart", "Restart the watcher service", "Restarting AssetSync service...", "Service restarted."))
	rootCmd.AddCommand(serviceCmd)
}
