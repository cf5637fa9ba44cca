package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syeo66/ochsenbein.red-2023/internal/schema"
)

type img string

func (i img) Src() string { return string(i) }

var registry = schema.NewDefaultRegistry(schema.ImageResolverFunc(func(ref string) (schema.ImageRef, error) {
	return img("/_assets/" + ref), nil
}))

func validate(t *testing.T, collection string, raw map[string]any) *schema.Record {
	t.Helper()
	rec, err := registry.Validate(collection, raw)
	require.NoError(t, err)
	return rec
}

func TestNewBlogPost(t *testing.T) {
	rec := validate(t, schema.CollectionBlog, map[string]any{
		"title":       "Hi",
		"description": "d",
		"pubDate":     "2023-05-01",
		"updatedDate": "2023-06-01",
		"devTo":       "https://dev.to/hi",
	})

	post := NewBlogPost("2023/hi", "content/blog/2023/hi.md", []byte("body"), rec)
	assert.Equal(t, "Hi", post.Title)
	assert.Equal(t, "/blog/2023/hi/", post.Permalink)
	assert.False(t, post.HeroImage.Present)
	assert.Equal(t, "https://dev.to/hi", post.DevTo.Value)
	assert.True(t, post.LastModified().Equal(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)))

	rec = validate(t, schema.CollectionBlog, map[string]any{"title": "Hi", "description": "d", "pubDate": "2023-05-01"})
	post = NewBlogPost("hi", "hi.md", nil, rec)
	assert.True(t, post.LastModified().Equal(post.PubDate))
}

func TestNewPortfolioItemAndExperiment(t *testing.T) {
	item := NewPortfolioItem("acme", "content/portfolio/acme.yaml", validate(t, schema.CollectionPortfolio, map[string]any{
		"slug": "acme-shop", "name": "ACME", "image": "acme.png", "employer": "Agency", "client": "ACME",
		"short": "s", "description": "d", "tasks": "t", "tags": []any{"go"},
	}))
	assert.Equal(t, "/portfolio/acme-shop/", item.Permalink)
	assert.Equal(t, "/_assets/acme.png", item.Image.Src())
	assert.Equal(t, []string{"go"}, item.Tags)
	assert.False(t, item.Website.Present)

	exp := NewExperiment("life", "content/experiments/life.yaml", validate(t, schema.CollectionExperiments, map[string]any{
		"slug": "life", "name": "Life", "image": "life.png", "short": "s", "tags": []any{}, "description": "cells",
	}))
	assert.Equal(t, "/experiments/life/", exp.Permalink)
	assert.Equal(t, "cells", exp.Description.OrElse(""))
	assert.Empty(t, exp.Tags)
}

func TestSiteData_Finalize(t *testing.T) {
	site := &SiteData{}
	for _, raw := range []map[string]any{
		{"title": "Old", "description": "d", "pubDate": "2020-01-01"},
		{"title": "New", "description": "d", "pubDate": "2024-01-01"},
	} {
		assert.True(t, site.Add(raw["title"].(string), "", nil, validate(t, schema.CollectionBlog, raw)))
	}
	for _, slug := range []string{"zeta", "alpha"} {
		site.Add(slug, "", nil, validate(t, schema.CollectionExperiments, map[string]any{
			"slug": slug, "name": slug, "image": slug + ".png", "short": "s", "tags": []any{"sim", slug},
		}))
	}
	site.Add("p", "", nil, validate(t, schema.CollectionPortfolio, map[string]any{
		"slug": "p", "name": "P", "image": "p.png", "employer": "e", "client": "c",
		"short": "s", "description": "d", "tasks": "t", "tags": []any{"sim"},
	}))

	site.Finalize()

	require.Len(t, site.Blog, 2)
	assert.Equal(t, "New", site.Blog[0].Title)
	assert.Equal(t, "alpha", site.Experiments[0].Slug)
	assert.Equal(t, []string{"alpha", "sim", "zeta"}, site.TagNames())
	assert.Len(t, site.Tags["sim"].Experiments, 2)
	assert.Len(t, site.Tags["sim"].Portfolio, 1)
}

func TestSiteData_AddUnknownCollection(t *testing.T) {
	reg := schema.NewRegistry(nil, &schema.Schema{Name: "notes", Fields: []schema.Field{{Name: "title", Type: schema.TypeString}}})
	rec, err := reg.Validate("notes", map[string]any{"title": "x"})
	require.NoError(t, err)

	site := &SiteData{}
	assert.False(t, site.Add("x", "", nil, rec))
}
