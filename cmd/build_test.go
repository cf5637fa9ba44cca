package cmd

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syeo66/ochsenbein.red-2023/internal/config"
)

func writeFile(t *testing.T, file, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, []byte(data), 0o644))
}

func writePNG(t *testing.T, file string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 6))))
}

// fixtureSite lays out a small site and returns its config.
func fixtureSite(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		SiteTitle:   "ochsenbein.red",
		ContentDir:  filepath.Join(root, "content"),
		LayoutsDir:  filepath.Join(root, "layouts"),
		StaticDir:   filepath.Join(root, "static"),
		OutputDir:   filepath.Join(root, "public"),
		AssetPrefix: "/_assets",
		LogLevel:    "info",
	}

	writeFile(t, filepath.Join(cfg.LayoutsDir, "base.html"), `<h1>{{.Title}}</h1>{{block "content" .}}{{end}}`)
	writeFile(t, filepath.Join(cfg.LayoutsDir, "home.html"), `{{define "content"}}{{range .Site.Blog}}<a href="{{.Permalink}}">{{.Title}}</a>{{end}}{{end}}`)
	writeFile(t, filepath.Join(cfg.LayoutsDir, "blog-post.html"), `{{define "content"}}{{.Page.HTML}}{{end}}`)
	writeFile(t, filepath.Join(cfg.LayoutsDir, "portfolio-item.html"), `{{define "content"}}<img src="{{.Page.Image.Src}}">{{.Page.Client}}{{end}}`)

	writeFile(t, filepath.Join(cfg.ContentDir, "blog", "first-post.md"), `---
title: First post
description: Hello there
pubDate: 2023-05-01
heroImage: /images/hero.jpg
---
Some *markdown*.
`)
	writeFile(t, filepath.Join(cfg.ContentDir, "portfolio", "acme.json"), `{
  "slug": "acme-shop",
  "name": "ACME Shop",
  "image": "./images/acme.png",
  "employer": "Agency",
  "client": "ACME Corp",
  "short": "Relaunch",
  "description": "A new shop",
  "tasks": "Frontend, backend",
  "tags": ["go", "react"]
}`)
	writePNG(t, filepath.Join(cfg.ContentDir, "portfolio", "images", "acme.png"))
	writeFile(t, filepath.Join(cfg.StaticDir, "favicon.ico"), "icon")
	return cfg
}

func TestRunBuildProcess(t *testing.T) {
	cfg := fixtureSite(t)
	log, _ := test.NewNullLogger()

	require.NoError(t, runBuildProcess(cfg, log))

	home, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), `<a href="/blog/first-post/">First post</a>`)

	post, err := os.ReadFile(filepath.Join(cfg.OutputDir, "blog", "first-post", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(post), "<em>markdown</em>")

	item, err := os.ReadFile(filepath.Join(cfg.OutputDir, "portfolio", "acme-shop", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(item), `<img src="/_assets/portfolio/images/acme.png">ACME Corp`)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "_assets", "portfolio", "images", "acme.png"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "favicon.ico"))
}

func TestRunBuildProcess_InvalidEntry(t *testing.T) {
	cfg := fixtureSite(t)
	writeFile(t, filepath.Join(cfg.ContentDir, "experiments", "broken.yaml"), "slug: broken\nname: Broken\nimage: nope.png\nshort: s\ntags: []\n")

	t.Run("lenient skips", func(t *testing.T) {
		log, hook := test.NewNullLogger()
		require.NoError(t, runBuildProcess(cfg, log))
		assert.NoDirExists(t, filepath.Join(cfg.OutputDir, "experiments", "broken"))

		var warned bool
		for _, e := range hook.AllEntries() {
			if e.Message == "Skipping invalid entry" && e.Data["field"] == "image" {
				warned = true
			}
		}
		assert.True(t, warned)
	})

	t.Run("strict aborts", func(t *testing.T) {
		strict := cfg
		strict.Strict = true
		log, _ := test.NewNullLogger()
		err := runBuildProcess(strict, log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.yaml")
	})
}

func TestRunCheck(t *testing.T) {
	cfg := fixtureSite(t)
	log, _ := test.NewNullLogger()

	var out bytes.Buffer
	require.NoError(t, runCheck(cfg, log, &out))
	assert.Equal(t, "2 entries valid\n", out.String())

	writeFile(t, filepath.Join(cfg.ContentDir, "blog", "undated.md"), "---\ntitle: Undated\ndescription: d\n---\n")
	out.Reset()
	err := runCheck(cfg, log, &out)
	assert.EqualError(t, err, "1 invalid content entries")
	assert.Contains(t, out.String(), "undated.md")
	assert.Contains(t, out.String(), `required field "pubDate" is missing`)
}

func TestDevHandler(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "home")
	writeFile(t, filepath.Join(dir, "blog", "a", "index.html"), "post")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	srv := httptest.NewServer(devHandler(dir))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/blog/a/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))

	resp, err = http.Get(srv.URL + "/empty/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWatch_DebouncesRebuilds(t *testing.T) {
	dir := t.TempDir()
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	log, _ := test.NewNullLogger()
	rebuilds := make(chan struct{}, 10)
	go watch(watcher, log, func() { rebuilds <- struct{}{} })
	addRecursive(watcher, log, dir)

	for i := 0; i < 3; i++ {
		writeFile(t, filepath.Join(dir, "post.md"), "change")
	}

	select {
	case <-rebuilds:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a rebuild")
	}
	select {
	case <-rebuilds:
		t.Fatal("expected rapid changes to be debounced into one rebuild")
	case <-time.After(2 * debounceDuration):
	}
}
