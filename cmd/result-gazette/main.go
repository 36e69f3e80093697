// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the result-gazette CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the result-gazette CLI.
var rootCmd = &cobra.Command{
	Use:   "result-gazette",
	Short: "Collect examination results from the board's results portal",
	Long: `result-gazette queries a government results website over a roll-number
range and collects candidate name, roll number, and result for each roll,
then renders the collected records into one summary table document.

Use scrape to run a range against the portal, export to re-render an
archived run without hitting the portal again.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./result-gazette.yaml or ~/.config/result-gazette/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("result-gazette")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "result-gazette"))
		}
	}

	viper.SetEnvPrefix("RESULT_GAZETTE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
