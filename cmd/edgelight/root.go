package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/edgelight"
	"github.com/gogpu/edgelight/internal/config"
	"github.com/gogpu/edgelight/internal/logging"
)

// cfg is loaded before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "edgelight",
	Short: "Edgelight draws a light trail around the screen edge for notifications",
	Long: `Edgelight picks a color for each notification and animates a trail of
light around a rounded-rectangle screen outline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			loaded.Log.Level = lvl
		}
		level, err := logging.ParseLevel(loaded.Log.Level)
		if err != nil {
			return err
		}
		format, err := logging.ParseFormat(loaded.Log.Format)
		if err != nil {
			return err
		}
		edgelight.SetLogger(logging.NewWriter(cmd.ErrOrStderr(), level, format))
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Replaced once the config is loaded.
	edgelight.SetLogger(logging.New(slog.LevelInfo, logging.FormatText))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Override log level (debug, info, warn, error)")
}
