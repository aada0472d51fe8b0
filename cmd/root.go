package main

import (
	"fmt"
	"os"

	"github.com/rmohr/plstats/pkg/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	configFile string
}

var rootopts = rootOpts{}

// config holds the merged settings of the running command. It is populated
// before any subcommand runs.
var config = &Config{}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plstats",
		Short: "plstats analyses configurations of product line feature models",
		Long:  `The tool completes partial configurations, enumerates the products of a feature model and computes statistics over populations of configurations`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := LoadConfig(rootopts.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			config = cfg
			if config.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if path != "" {
				logrus.Debugf("Using configuration file %s.", path)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
		},
	}

	rootCmd.PersistentFlags().StringVar(&rootopts.configFile, "config", "", "configuration file, defaults to plstats/config.yaml in the XDG config directories")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every decision taken")

	rootCmd.AddCommand(NewCompleteCmd())
	rootCmd.AddCommand(NewEnumerateCmd())
	rootCmd.AddCommand(NewInfoCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewValidateCmd())
	return rootCmd
}

// The values of these flags are read from config, LoadConfig merges them
// with the environment and the config file.

func addModelFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "model.yaml", "feature model file")
}

func addLimitFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("limit", "l", 0, "stop after this many products, 0 means no limit")
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", report.FormatYAML, fmt.Sprintf("output format, one of %v", report.Formats))
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
