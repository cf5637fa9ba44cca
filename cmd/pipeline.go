package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/syeo66/ochsenbein.red-2023/internal/asset"
	"github.com/syeo66/ochsenbein.red-2023/internal/config"
	"github.com/syeo66/ochsenbein.red-2023/internal/content"
	"github.com/syeo66/ochsenbein.red-2023/internal/model"
	"github.com/syeo66/ochsenbein.red-2023/internal/schema"
)

// registry is shared by every build; schemas never change after startup.
var registry = schema.NewDefaultRegistry(nil)

// loadSite loads and validates all collections and assembles the site data.
func loadSite(cfg config.Config, log logrus.FieldLogger, strict bool) (*model.SiteData, *content.Report, *asset.Resolver, error) {
	resolver := asset.NewResolver(cfg.ContentDir, cfg.StaticDir, cfg.AssetPrefix)
	loader := content.NewLoader(cfg.ContentDir, log)
	collector := &content.Collector{
		Registry:  registry,
		Resolvers: resolver,
		Strict:    strict,
		Logger:    log,
	}

	report, err := content.LoadAll(loader, collector)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("content validation failed: %w", err)
	}

	site := &model.SiteData{
		Title:   cfg.SiteTitle,
		BaseURL: cfg.BaseURL,
		Params:  cfg.Params,
	}
	for _, v := range report.Valid {
		site.Add(v.Entry.ID, v.Entry.Path, v.Entry.Body, v.Record)
	}
	site.Finalize()

	log.WithFields(logrus.Fields{
		"blog":        len(site.Blog),
		"portfolio":   len(site.Portfolio),
		"experiments": len(site.Experiments),
		"invalid":     len(report.Failures),
	}).Info("Content collected")
	return site, report, resolver, nil
}
