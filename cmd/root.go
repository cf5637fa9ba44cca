package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syeo66/ochsenbein.red-2023/internal/config"
	"github.com/syeo66/ochsenbein.red-2023/internal/logging"
)

var (
	cfgFile   string
	appConfig config.Config
	logger    *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ochsenbein",
	Short: "Static site generator for ochsenbein.red",
	Long: `Builds ochsenbein.red from typed content collections: Markdown blog
posts plus YAML/JSON portfolio entries and experiments. Every entry is
validated against its collection schema before any page is rendered.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Bool("strict", false, "abort on the first invalid content entry")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// initializeConfig loads the config for cmd. Persistent flags are merged into
// cmd.Flags() by the time the pre-run hook fires.
func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	if err := v.BindPFlag("strict", cmd.Flags().Lookup("strict")); err != nil {
		return err
	}
	if err := v.BindPFlag("logLevel", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}

	cfg, used, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	logger, err = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if used != "" {
		logger.WithField("file", used).Info("Using config file")
	} else {
		logger.Info("No config file found. Using default values and/or environment variables.")
	}
	return nil
}
