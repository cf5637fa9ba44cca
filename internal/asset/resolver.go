// Package asset resolves image references found in content files.
package asset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/syeo66/ochsenbein.red-2023/internal/schema"
)

// Image is a resolved image file.
type Image struct {
	URL    string
	Path   string
	Width  int
	Height int
	Format string

	// fromContent marks images living next to content files; those are
	// copied into the output on build. Static images are copied with the
	// static dir.
	fromContent bool
}

// Src returns the public URL of the image.
func (i *Image) Src() string {
	return i.URL
}

// Resolver resolves image references against the content and static dirs.
// Resolved images are memoized by absolute path for the resolver's lifetime.
type Resolver struct {
	ContentDir   string
	StaticDir    string
	PublicPrefix string

	cache *cache.Cache
}

// NewResolver creates a resolver. Content images are published under prefix.
func NewResolver(contentDir, staticDir, prefix string) *Resolver {
	return &Resolver{
		ContentDir:   contentDir,
		StaticDir:    staticDir,
		PublicPrefix: "/" + strings.Trim(prefix, "/"),
		cache:        cache.New(cache.NoExpiration, 0),
	}
}

// For returns an ImageResolver for a content file living in dir. References
// starting with "/" resolve under the static dir, all others relative to dir.
func (r *Resolver) For(dir string) schema.ImageResolver {
	return schema.ImageResolverFunc(func(ref string) (schema.ImageRef, error) {
		img, err := r.resolve(dir, ref)
		if err != nil {
			return nil, err
		}
		return img, nil
	})
}

func (r *Resolver) resolve(dir, ref string) (*Image, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("empty image reference")
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//") {
		return nil, fmt.Errorf("remote image %q is not supported", ref)
	}

	var file, src string
	fromContent := !strings.HasPrefix(ref, "/")
	if fromContent {
		file = filepath.Join(dir, filepath.FromSlash(ref))
		rel, ok := relativeTo(r.ContentDir, file)
		if !ok {
			return nil, fmt.Errorf("image %q is outside the content directory", ref)
		}
		src = path.Join(r.PublicPrefix, filepath.ToSlash(rel))
	} else {
		file = filepath.Join(r.StaticDir, filepath.FromSlash(ref))
		rel, ok := relativeTo(r.StaticDir, file)
		if !ok {
			return nil, fmt.Errorf("image %q is outside the static directory", ref)
		}
		src = "/" + filepath.ToSlash(rel)
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image path %q: %w", ref, err)
	}
	if cached, ok := r.cache.Get(abs); ok {
		return cached.(*Image), nil
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %q: %w", ref, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", ref, err)
	}

	img := &Image{
		URL:         src,
		Path:        abs,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      format,
		fromContent: fromContent,
	}
	r.cache.Set(abs, img, cache.NoExpiration)
	return img, nil
}

// ContentImages returns every resolved image that lives in the content dir,
// sorted by URL.
func (r *Resolver) ContentImages() []*Image {
	var images []*Image
	for _, item := range r.cache.Items() {
		if img, ok := item.Object.(*Image); ok && img.fromContent {
			images = append(images, img)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].URL < images[j].URL
	})
	return images
}

// relativeTo returns file relative to dir, or false if file is not below dir.
func relativeTo(dir, file string) (string, bool) {
	rel, err := filepath.Rel(dir, file)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
