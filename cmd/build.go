package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/syeo66/ochsenbein.red-2023/internal/config"
	"github.com/syeo66/ochsenbein.red-2023/internal/render"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command loads every content collection below the content
directory, validates each entry against its schema, renders the pages with the
layouts directory and copies static assets and referenced images into the
output directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(appConfig, logger)
	},
}

func runBuildProcess(cfg config.Config, log logrus.FieldLogger) error {
	log.WithFields(logrus.Fields{
		"outputDir": cfg.OutputDir,
		"baseURL":   cfg.BaseURL,
		"strict":    cfg.Strict,
	}).Info("Starting build")

	layouts, err := render.LoadLayouts(cfg.LayoutsDir)
	if err != nil {
		return err
	}

	site, _, resolver, err := loadSite(cfg, log, cfg.Strict)
	if err != nil {
		return err
	}

	builder := render.NewBuilder(layouts, cfg.OutputDir, cfg.StaticDir, log)
	if err := builder.Build(site, resolver.ContentImages()); err != nil {
		return err
	}
	log.Info("Build completed successfully")
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
