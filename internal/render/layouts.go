package render

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	baseLayout     = "base.html"
	partialsDir    = "partials"
	homeLayout     = "home.html"
	blogListLayout = "blog-list.html"
	blogPostLayout = "blog-post.html"
	portfolioList  = "portfolio-list.html"
	portfolioItem  = "portfolio-item.html"
	experimentList = "experiments-list.html"
	experimentPage = "experiment.html"
	tagLayout      = "tag.html"
)

// Layouts holds one template set per page layout. Every set contains
// base.html, all partials and the page layout itself; pages are rendered by
// executing base.html.
type Layouts struct {
	pages map[string]*template.Template
}

// Has reports whether a page layout was found.
func (l *Layouts) Has(name string) bool {
	_, ok := l.pages[name]
	return ok
}

// Funcs are the functions available in layouts.
func Funcs() template.FuncMap {
	titleCaser := cases.Title(language.English)
	return template.FuncMap{
		"date": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
		"isoDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"title": func(s string) string {
			return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(s))
		},
		"tagURL": tagPermalink,
	}
}

// LoadLayouts parses dir. base.html must sit directly in dir; files below
// partials/ are shared by every page.
func LoadLayouts(dir string) (*Layouts, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("layouts directory '%s' not found", dir)
	}

	var basePath string
	var partials, pages []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case filepath.Dir(path) == filepath.Clean(dir) && d.Name() == baseLayout:
			basePath = path
		case strings.HasPrefix(path, filepath.Join(dir, partialsDir)+string(filepath.Separator)):
			partials = append(partials, path)
		default:
			pages = append(pages, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files in '%s': %w", dir, err)
	}
	if basePath == "" {
		return nil, fmt.Errorf("%s not found directly in layouts directory '%s'", baseLayout, dir)
	}

	base, err := template.New(baseLayout).Funcs(Funcs()).ParseFiles(append([]string{basePath}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s and partials: %w", baseLayout, err)
	}

	layouts := &Layouts{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base layout: %w", err)
		}
		if _, err := clone.ParseFiles(page); err != nil {
			return nil, fmt.Errorf("failed to parse layout '%s': %w", page, err)
		}
		rel, _ := filepath.Rel(dir, page)
		layouts.pages[filepath.ToSlash(rel)] = clone
	}
	return layouts, nil
}

func tagPermalink(tag string) string {
	return "/tags/" + slugify(tag) + "/"
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
