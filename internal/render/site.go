package render

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"

	"github.com/syeo66/ochsenbein.red-2023/internal/asset"
	"github.com/syeo66/ochsenbein.red-2023/internal/model"
)

// PageData is passed to every layout.
type PageData struct {
	Site  *model.SiteData
	Title string
	// Page is the entry or list being rendered.
	Page any
}

// Builder writes a site to OutputDir.
type Builder struct {
	Layouts   *Layouts
	OutputDir string
	StaticDir string
	Logger    logrus.FieldLogger

	md goldmark.Markdown
}

// NewBuilder creates a builder.
func NewBuilder(layouts *Layouts, outputDir, staticDir string, logger logrus.FieldLogger) *Builder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Builder{
		Layouts:   layouts,
		OutputDir: outputDir,
		StaticDir: staticDir,
		Logger:    logger,
		md:        NewMarkdown(),
	}
}

// Build cleans the output directory and writes every page, the static dir
// and the given content images. Permalinks are checked before anything is
// written; two pages sharing one output path is an error.
func (b *Builder) Build(site *model.SiteData, images []*asset.Image) error {
	if !b.Layouts.Has(homeLayout) {
		return fmt.Errorf("homepage layout '%s' not found. Please create it in the layouts directory", homeLayout)
	}

	pages := plan(site)
	if err := checkPermalinks(pages); err != nil {
		return err
	}

	b.Logger.WithField("dir", b.OutputDir).Info("Cleaning output directory")
	if err := os.RemoveAll(b.OutputDir); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", b.OutputDir, err)
	}
	if err := os.MkdirAll(b.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", b.OutputDir, err)
	}

	if err := b.copyAssets(images); err != nil {
		return err
	}

	for _, post := range site.Blog {
		html, err := Markdown(b.md, post.Body)
		if err != nil {
			return fmt.Errorf("%s: %w", post.SourcePath, err)
		}
		post.HTML = html
	}

	for _, p := range pages {
		if p.layout == homeLayout {
			if err := b.page(p.layout, p.permalink, p.data); err != nil {
				return err
			}
			continue
		}
		if err := b.optionalPage(p.layout, p.permalink, p.data); err != nil {
			return err
		}
	}
	return nil
}

// pageSpec is one page of the site.
type pageSpec struct {
	layout    string
	permalink string
	// source names the page in errors, usually the content file.
	source string
	// parent is the permalink the page must live below, if any.
	parent string
	data   PageData
}

// plan lists every page of the site, whether or not its layout exists.
func plan(site *model.SiteData) []pageSpec {
	pages := []pageSpec{
		{layout: homeLayout, permalink: "/", source: "home page", data: PageData{Site: site, Title: site.Title}},
		{layout: blogListLayout, permalink: "/blog/", source: "blog list", data: PageData{Site: site, Title: "Blog", Page: site.Blog}},
	}
	for _, post := range site.Blog {
		pages = append(pages, pageSpec{layout: blogPostLayout, permalink: post.Permalink, source: post.SourcePath, parent: "/blog/",
			data: PageData{Site: site, Title: post.Title, Page: post}})
	}
	pages = append(pages, pageSpec{layout: portfolioList, permalink: "/portfolio/", source: "portfolio list",
		data: PageData{Site: site, Title: "Portfolio", Page: site.Portfolio}})
	for _, item := range site.Portfolio {
		pages = append(pages, pageSpec{layout: portfolioItem, permalink: item.Permalink, source: item.SourcePath, parent: "/portfolio/",
			data: PageData{Site: site, Title: item.Name, Page: item}})
	}
	pages = append(pages, pageSpec{layout: experimentList, permalink: "/experiments/", source: "experiments list",
		data: PageData{Site: site, Title: "Experiments", Page: site.Experiments}})
	for _, exp := range site.Experiments {
		pages = append(pages, pageSpec{layout: experimentPage, permalink: exp.Permalink, source: exp.SourcePath, parent: "/experiments/",
			data: PageData{Site: site, Title: exp.Name, Page: exp}})
	}
	for _, tag := range site.TagNames() {
		pages = append(pages, pageSpec{layout: tagLayout, permalink: tagPermalink(tag), source: fmt.Sprintf("tag %q", tag), parent: "/tags/",
			data: PageData{Site: site, Title: tag, Page: site.Tags[tag]}})
	}
	return pages
}

// checkPermalinks reports the first page that shares its output path with
// another page or does not live below its parent.
func checkPermalinks(pages []pageSpec) error {
	seen := make(map[string]string, len(pages))
	for _, p := range pages {
		key := path.Clean("/" + p.permalink)
		if p.parent != "" && !strings.HasPrefix(key, path.Clean(p.parent)+"/") {
			return fmt.Errorf("%s: permalink %q is not below %s", p.source, p.permalink, p.parent)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%s: permalink %q collides with %s", p.source, p.permalink, prev)
		}
		seen[key] = p.source
	}
	return nil
}

func (b *Builder) copyAssets(images []*asset.Image) error {
	if b.StaticDir != "" {
		if _, err := os.Stat(b.StaticDir); err == nil {
			b.Logger.WithField("dir", b.StaticDir).Info("Copying static assets")
			if err := copyDirContents(b.StaticDir, b.OutputDir); err != nil {
				return fmt.Errorf("failed to copy static assets: %w", err)
			}
		} else {
			b.Logger.WithField("dir", b.StaticDir).Debug("Static assets directory not found, skipping copy")
		}
	}

	for _, img := range images {
		dst := filepath.Join(b.OutputDir, filepath.FromSlash(strings.TrimPrefix(img.URL, "/")))
		if err := copyFile(img.Path, dst); err != nil {
			return fmt.Errorf("failed to copy image: %w", err)
		}
	}
	return nil
}

// optionalPage renders like page but skips layouts that do not exist.
func (b *Builder) optionalPage(layout, permalink string, data PageData) error {
	if !b.Layouts.Has(layout) {
		b.Logger.WithFields(logrus.Fields{"layout": layout, "page": permalink}).Warn("Layout not found, skipping page")
		return nil
	}
	return b.page(layout, permalink, data)
}

func (b *Builder) page(layout, permalink string, data PageData) error {
	outputPath := filepath.Join(b.OutputDir, filepath.FromSlash(strings.Trim(permalink, "/")), "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", permalink, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", outputPath, err)
	}
	defer out.Close()

	if err := b.Layouts.pages[layout].ExecuteTemplate(out, baseLayout, data); err != nil {
		return fmt.Errorf("failed to execute template '%s' for '%s': %w", layout, permalink, err)
	}
	b.Logger.WithFields(logrus.Fields{"layout": layout, "file": outputPath}).Debug("Generated page")
	return nil
}
